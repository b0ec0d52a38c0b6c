package main

import "feedbackclassifier/internal/app"

func main() {
	app.Main()
}
