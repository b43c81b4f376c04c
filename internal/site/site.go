// Package site holds the static page definitions of the marketing site.
package site

import (
	"fmt"
	"time"
)

// HeroStep is one element of the home page hero that fades in
type HeroStep struct {
	ID         string
	Text       string
	Delay      time.Duration
	Transition time.Duration
}

// AnimationDelay formats the step delay for a CSS animation-delay property
func (s HeroStep) AnimationDelay() string {
	return fmt.Sprintf("%dms", s.Delay.Milliseconds())
}

// AnimationDuration formats the transition for a CSS animation-duration property
func (s HeroStep) AnimationDuration() string {
	return fmt.Sprintf("%dms", s.Transition.Milliseconds())
}

// HeroSequence returns the hero elements in the order they appear
func HeroSequence() []HeroStep {
	return []HeroStep{
		{ID: "welcome-heading", Text: "Welcome to our community", Delay: 500 * time.Millisecond, Transition: time.Second},
		{ID: "tagline-paragraph", Text: "Local goods, services and people working together.", Delay: time.Second, Transition: time.Second},
	}
}

// Page is a static page of the site
type Page struct {
	Path        string
	Template    string
	Title       string
	Description string
}

// Pages lists the static pages served as-is
var Pages = []Page{
	{Path: "/", Template: "home", Title: "Home", Description: "Welcome to our community site."},
	{Path: "/services", Template: "services", Title: "Services", Description: "What we offer."},
	{Path: "/about", Template: "about", Title: "About", Description: "Who we are."},
}
