package models

import "strings"

// Product is one entry of the product catalogue
type Product struct {
	ID          int64  `json:"id" yaml:"id"`
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	ImageURL    string `json:"image_url" yaml:"image"`
	AltText     string `json:"alt_text" yaml:"alt"`
	Description string `json:"description" yaml:"description"` // Markdown
}

// ProductFilter holds search and pagination options for listing products
type ProductFilter struct {
	Term     string
	Page     int
	PageSize int
}

// Matches reports whether the product name contains term, ignoring case.
// An empty term matches every product.
func (p *Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}

// Validate performs basic validation on catalogue data
func (p *Product) Validate() error {
	if p.Slug == "" {
		return ErrInvalidInput("product slug is required")
	}
	if p.Name == "" {
		return ErrInvalidInput("product name is required")
	}
	if p.ImageURL == "" {
		return ErrInvalidInput("product image is required")
	}
	return nil
}

// ProductView is a product prepared for display
type ProductView struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	ImageURL        string `json:"image_url"`
	AltText         string `json:"alt_text"`
	DescriptionHTML string `json:"description_html"`
}

// LightboxView is the enlarged image of a product with its caption
type LightboxView struct {
	Slug    string `json:"slug"`
	Src     string `json:"src"`
	Caption string `json:"caption"`
}
