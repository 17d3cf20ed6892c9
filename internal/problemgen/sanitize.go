package problemgen

import "strings"

var markupStripper = strings.NewReplacer("$", "", "*", "")

// Sanitize removes the LaTeX and Markdown artifacts models leave in plain
// text ($ and *) and trims surrounding whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(markupStripper.Replace(s))
}

// Sanitized returns a copy of q with every text field and option sanitized.
func (q Question) Sanitized() Question {
	out := q
	out.Text = Sanitize(q.Text)
	out.Answer = Sanitize(q.Answer)
	out.Explanation = Sanitize(q.Explanation)
	out.Topic = strings.TrimSpace(q.Topic)
	if q.Options != nil {
		out.Options = make([]string, len(q.Options))
		for i, o := range q.Options {
			out.Options[i] = Sanitize(o)
		}
	}
	return out
}

// Sanitized returns a copy of p with every text field sanitized.
func (p PaperQuestion) Sanitized() PaperQuestion {
	out := p
	out.Text = Sanitize(p.Text)
	if p.Parts != nil {
		out.Parts = make([]PaperPart, len(p.Parts))
		for i, part := range p.Parts {
			out.Parts[i] = PaperPart{
				Label: Sanitize(part.Label),
				Text:  Sanitize(part.Text),
				Marks: part.Marks,
			}
		}
	}
	return out
}
