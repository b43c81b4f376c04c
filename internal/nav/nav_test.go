package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func activeLabels(items []RenderedItem) []string {
	out := []string{}
	for _, it := range items {
		if it.Active {
			out = append(out, it.Label)
		}
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{path: "", want: []string{"Home"}},
		{path: "/", want: []string{"Home"}},
		{path: "/index.html", want: []string{"Home"}},
		{path: "/products", want: []string{"Products"}},
		{path: "/products/", want: []string{"Products"}},
		{path: "/products.html", want: []string{"Products"}},
		{path: "/products/honey-jar", want: []string{"Products"}},
		{path: "/enquiries", want: []string{"Enquiries"}},
		{path: "/productsale", want: []string{}},
		{path: "/contact", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := activeLabels(Build(tt.path))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build(%q) active mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestBuild_KeepsOrder(t *testing.T) {
	items := Build("/about")
	if len(items) != len(Main) {
		t.Fatalf("len = %d, want %d", len(items), len(Main))
	}
	for i, it := range items {
		if it.Href != Main[i].Path {
			t.Errorf("items[%d].Href = %q, want %q", i, it.Href, Main[i].Path)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := Breadcrumbs("/products/honey-jar")
	want := []Crumb{
		{Href: "/", Label: "Home"},
		{Href: "/products", Label: "Products"},
		{Href: "/products/honey-jar", Label: "Honey jar", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Breadcrumbs() mismatch (-want +got):\n%s", diff)
	}

	root := Breadcrumbs("/")
	if len(root) != 1 || !root[0].Active {
		t.Errorf("Breadcrumbs(/) = %+v", root)
	}
}
