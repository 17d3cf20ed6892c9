package curriculum

import (
	"strconv"
	"strings"
)

// PastPaper is a catalog entry a mock paper can be modelled on.
type PastPaper struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Year       int    `json:"year"`
	Season     string `json:"season"`
}

var pastPapers = []PastPaper{
	{ID: "jan24_p1", Title: "Jan 2024 - Pure Math 1", Difficulty: "Hard", Year: 2024, Season: "Jan"},
	{ID: "jun23_p1", Title: "June 2023 - Pure Math 1", Difficulty: "Medium", Year: 2023, Season: "June"},
	{ID: "oct23_p1", Title: "Oct 2023 - Pure Math 1", Difficulty: "Hard", Year: 2023, Season: "Oct"},
	{ID: "jan23_p1", Title: "Jan 2023 - Pure Math 1", Difficulty: "Easy", Year: 2023, Season: "Jan"},
	{ID: "jun22_p1", Title: "June 2022 - Pure Math 1", Difficulty: "Medium", Year: 2022, Season: "June"},
	{ID: "jan22_p1", Title: "Jan 2022 - Pure Math 1", Difficulty: "Hard", Year: 2022, Season: "Jan"},
	{ID: "jan24_p2", Title: "Jan 2024 - Pure Math 2", Difficulty: "Medium", Year: 2024, Season: "Jan"},
	{ID: "jun23_p2", Title: "June 2023 - Pure Math 2", Difficulty: "Hard", Year: 2023, Season: "June"},
	{ID: "jan24_s1", Title: "Jan 2024 - Statistics 1", Difficulty: "Medium", Year: 2024, Season: "Jan"},
	{ID: "jun23_s1", Title: "June 2023 - Statistics 1", Difficulty: "Hard", Year: 2023, Season: "June"},
	{ID: "oct22_s1", Title: "Oct 2022 - Statistics 1", Difficulty: "Medium", Year: 2022, Season: "Oct"},
}

// Papers returns the full past-paper catalog.
func Papers() []PastPaper {
	out := make([]PastPaper, len(pastPapers))
	copy(out, pastPapers)
	return out
}

// FilterPapers returns papers whose title, year or season contains term,
// ignoring case. An empty term matches everything.
func FilterPapers(term string) []PastPaper {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []PastPaper
	for _, p := range pastPapers {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strconv.Itoa(p.Year), term) ||
			strings.Contains(strings.ToLower(p.Season), term) {
			out = append(out, p)
		}
	}
	return out
}

// FindPaper returns the paper with the given ID.
func FindPaper(id string) (PastPaper, bool) {
	for _, p := range pastPapers {
		if p.ID == id {
			return p, true
		}
	}
	return PastPaper{}, false
}
