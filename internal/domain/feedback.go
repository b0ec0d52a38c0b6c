package domain

const (
	FeedbackColumn       = "Feedback"
	DefaultLabelColumn   = "Predicted_Category"
	UnknownCategory      = "Unknown"
	DefaultHypothesisTpl = "This example is {}."
)

type FeedbackRecord struct {
	Row    int // 1-based data row, header excluded
	Values []string
}

// Table is a CSV file whose header has been checked for the Feedback column.
type Table struct {
	Header        []string
	Records       []FeedbackRecord
	FeedbackIndex int
}

func (t *Table) Texts() []string {
	texts := make([]string, len(t.Records))
	for i, rec := range t.Records {
		texts[i] = rec.Values[t.FeedbackIndex]
	}
	return texts
}

type CategorySet []string

func (s CategorySet) Contains(label string) bool {
	for _, c := range s {
		if c == label {
			return true
		}
	}
	return false
}

func (s CategorySet) Index(label string) int {
	for i, c := range s {
		if c == label {
			return i
		}
	}
	return -1
}

type LabelScore struct {
	Label string
	Score float64
}

// ClassificationResult is ranked by descending score.
type ClassificationResult []LabelScore

func (r ClassificationResult) Top() (LabelScore, bool) {
	if len(r) == 0 {
		return LabelScore{}, false
	}
	return r[0], true
}

// Prediction holds either a top label or the error that prevented one.
type Prediction struct {
	Label      string
	Confidence float64
	Err        error
}

func (p Prediction) Failed() bool {
	return p.Err != nil || p.Label == ""
}

// Category is the value written to the output table.
func (p Prediction) Category() string {
	if p.Failed() {
		return UnknownCategory
	}
	return p.Label
}

type CategoryCount struct {
	Category string
	Count    int
}

// CategoryDistribution is ordered by descending count.
type CategoryDistribution []CategoryCount

func (d CategoryDistribution) Total() int {
	total := 0
	for _, c := range d {
		total += c.Count
	}
	return total
}

type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}
