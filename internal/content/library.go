package content

import (
	"time"

	"github.com/bastionhq/bastion/internal/services"
)

var bookCatalog = []services.Book{
	{
		ID:      "deep-survival",
		Title:   "Deep Survival",
		Author:  "Laurence Gonzales",
		Summary: "Who lives, who dies, and why, under real pressure.",
		XP:      40,
	},
	{
		ID:      "obstacle-is-the-way",
		Title:   "The Obstacle Is the Way",
		Author:  "Ryan Holiday",
		Summary: "Stoic practice for turning setbacks into the plan.",
		XP:      40,
	},
	{
		ID:      "why-we-sleep",
		Title:   "Why We Sleep",
		Author:  "Matthew Walker",
		Summary: "What sleep debt actually costs the body and the mind.",
		XP:      40,
	},
	{
		ID:      "mindset",
		Title:   "Mindset",
		Author:  "Carol Dweck",
		Summary: "Fixed versus growth framing and why it decides outcomes.",
		XP:      40,
	},
	{
		ID:      "on-combat",
		Title:   "On Combat",
		Author:  "Dave Grossman",
		Summary: "The physiology of lethal stress and how training buffers it.",
		XP:      40,
	},
	{
		ID:      "extreme-ownership",
		Title:   "Extreme Ownership",
		Author:  "Jocko Willink and Leif Babin",
		Summary: "Leadership lessons cut down to owning every outcome.",
		XP:      40,
	},
}

var quoteDeck = []services.Quote{
	{Text: "Slow is smooth, smooth is fast.", Attribution: "Unknown"},
	{Text: "The more you sweat in training, the less you bleed in battle.", Attribution: "Richard Marcinko"},
	{Text: "Discipline equals freedom.", Attribution: "Jocko Willink"},
	{Text: "You don't rise to the occasion, you sink to the level of your training.", Attribution: "Archilochus"},
	{Text: "Courage is not the absence of fear, but the mastery of it.", Attribution: "Unknown"},
	{Text: "Fatigue makes cowards of us all.", Attribution: "Vince Lombardi"},
	{Text: "He who sweats more in training bleeds less in war.", Attribution: "Spartan proverb"},
	{Text: "The body keeps the score; so does the log.", Attribution: "Unknown"},
	{Text: "Amateurs talk tactics. Professionals talk logistics.", Attribution: "Omar Bradley"},
	{Text: "Calm is contagious.", Attribution: "Rorke Denver"},
	{Text: "Under pressure you don't think your way to a feeling, you act your way to one.", Attribution: "Unknown"},
	{Text: "Rest is a weapon.", Attribution: "Unknown"},
	{Text: "What stands in the way becomes the way.", Attribution: "Marcus Aurelius"},
	{Text: "Hard choices, easy life. Easy choices, hard life.", Attribution: "Jerzy Gregorek"},
}

// Books returns the reading list in display order.
func Books() []services.Book {
	return bookCatalog
}

// Book looks up a reading-list entry by id; nil when unknown.
func Book(id string) *services.Book {
	for i := range bookCatalog {
		if bookCatalog[i].ID == id {
			return &bookCatalog[i]
		}
	}
	return nil
}

// DailyQuote returns the deck entry for the given day. The pick depends
// only on the UTC date, so every soldier sees the same quote.
func DailyQuote(now time.Time) services.Quote {
	day := now.UTC().Truncate(24 * time.Hour)
	idx := int(day.Unix()/86400) % len(quoteDeck)
	if idx < 0 {
		idx += len(quoteDeck)
	}
	return quoteDeck[idx]
}
