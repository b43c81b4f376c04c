package nav

import (
	"path"
	"strings"
)

// Item is a top-level navigation link
type Item struct {
	Path  string
	Label string
}

// RenderedItem is a navigation link with its active state resolved
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb is one breadcrumb entry
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation
var Main = []Item{
	{Path: "/", Label: "Home"},
	{Path: "/products", Label: "Products"},
	{Path: "/services", Label: "Services"},
	{Path: "/enquiries", Label: "Enquiries"},
	{Path: "/about", Label: "About"},
}

// Build marks the items of Main that match currentPath
func Build(currentPath string) []RenderedItem {
	current := normalize(currentPath)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, current),
		})
	}
	return items
}

// normalize maps index pages to the root and drops trailing slashes
func normalize(p string) string {
	if p == "" {
		return "/"
	}
	clean := path.Clean("/" + strings.TrimPrefix(p, "/"))
	if clean == "/index.html" {
		return "/"
	}
	return clean
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath || currentPath == itemPath+".html" {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs returns Home followed by one crumb per path segment
func Breadcrumbs(currentPath string) []Crumb {
	current := normalize(currentPath)
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: current == "/"}}
	if current == "/" {
		return crumbs
	}

	parts := strings.Split(strings.TrimPrefix(current, "/"), "/")
	href := ""
	for i, part := range parts {
		href += "/" + part
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  labelFor(href, part),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func labelFor(href, segment string) string {
	for _, it := range Main {
		if it.Path == href {
			return it.Label
		}
	}
	return titleFromSegment(strings.TrimSuffix(segment, ".html"))
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
