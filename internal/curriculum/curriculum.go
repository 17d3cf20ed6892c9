// Package curriculum holds the static Edexcel IAL course catalog: subjects,
// chapters, topics and the past-paper list used for mock papers.
package curriculum

import (
	"fmt"
	"slices"
	"strings"
)

// Subject is one examined unit, e.g. Pure Mathematics 1.
type Subject struct {
	Code     string // "P1", "P2", "S1"
	Title    string
	Chapters []Chapter
}

// Chapter groups related topics.
type Chapter struct {
	ID     string
	Title  string
	Topics []string

	// Guide and Details are only present for chapters with study notes.
	Guide   *Guide
	Details *Details
}

// Guide summarises the video lesson for a chapter.
type Guide struct {
	Structure   []string
	CoreContent string
	Tips        []string
}

// Details carries revision notes for a chapter.
type Details struct {
	KeyPoints []string
	Formulas  []string
	Concepts  []Concept
}

// Concept is a glossary term.
type Concept struct {
	Term       string
	Definition string
}

// TopicRef locates a topic in the catalog.
type TopicRef struct {
	Subject string
	Chapter string
	Topic   string
}

// index holds the catalog with precomputed lookups.
type index struct {
	subjects  []Subject
	byCode    map[string]*Subject
	byChapter map[string]*Chapter
	byTopic   map[string]TopicRef
	topics    []string
}

// idx is the package-level catalog, built by init() from seed data.
var idx *index

func init() {
	idx = buildIndex(seedSubjects)
}

func buildIndex(subjects []Subject) *index {
	ix := &index{
		subjects:  subjects,
		byCode:    make(map[string]*Subject, len(subjects)),
		byChapter: make(map[string]*Chapter),
		byTopic:   make(map[string]TopicRef),
	}
	for i := range ix.subjects {
		s := &ix.subjects[i]
		ix.byCode[s.Code] = s
		for j := range s.Chapters {
			ch := &s.Chapters[j]
			ix.byChapter[ch.ID] = ch
			for _, t := range ch.Topics {
				key := strings.ToLower(t)
				if _, dup := ix.byTopic[key]; dup {
					continue
				}
				ix.byTopic[key] = TopicRef{Subject: s.Code, Chapter: ch.ID, Topic: t}
				ix.topics = append(ix.topics, t)
			}
		}
	}
	return ix
}

// Subjects returns every subject in display order.
func Subjects() []Subject {
	return idx.subjects
}

// SubjectByCode returns a subject by its code.
func SubjectByCode(code string) (Subject, error) {
	s, ok := idx.byCode[strings.ToUpper(code)]
	if !ok {
		return Subject{}, fmt.Errorf("subject not found: %q", code)
	}
	return *s, nil
}

// ChapterByID returns a chapter by its ID.
func ChapterByID(id string) (Chapter, error) {
	ch, ok := idx.byChapter[id]
	if !ok {
		return Chapter{}, fmt.Errorf("chapter not found: %q", id)
	}
	return *ch, nil
}

// AllTopics returns every distinct topic label in catalog order.
func AllTopics() []string {
	return slices.Clone(idx.topics)
}

// FindTopic resolves a topic label, ignoring case.
func FindTopic(name string) (TopicRef, bool) {
	ref, ok := idx.byTopic[strings.ToLower(strings.TrimSpace(name))]
	return ref, ok
}

// ChapterProgress returns how many of the chapter's topics are completed
// and the total number of topics.
func ChapterProgress(ch Chapter, completed func(topic string) bool) (done, total int) {
	for _, t := range ch.Topics {
		if completed(t) {
			done++
		}
	}
	return done, len(ch.Topics)
}
