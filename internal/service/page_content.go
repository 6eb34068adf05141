package service

import "github.com/noah-isme/aoa-site/internal/models"

var studioServices = []models.Service{
	{
		Title:       "Brand Identity & Logo Design",
		Summary:     "Creating memorable and impactful brand identities that resonate with your audience.",
		Description: "Our brand identity and logo design service helps businesses establish a strong visual presence. We create unique, memorable logos and comprehensive brand guidelines that ensure consistency across all touchpoints.",
	},
	{
		Title:       "Website & App Design",
		Summary:     "Designing user-friendly and visually appealing websites and applications.",
		Description: "We design responsive websites and intuitive mobile applications that not only look great but also provide an excellent user experience. Our designs are tailored to meet your specific business goals and user needs.",
	},
}

var navItems = []models.NavItem{
	{Name: "Home", Anchor: "home"},
	{Name: "About Us", Anchor: "about"},
	{Name: "Services", Anchor: "services"},
	{Name: "Contact", Anchor: "contact"},
}

// StudioServices returns the service panels shown on the page.
func StudioServices() []models.Service {
	return append([]models.Service(nil), studioServices...)
}

// NavItems returns the header navigation.
func NavItems() []models.NavItem {
	return append([]models.NavItem(nil), navItems...)
}

// IsNavAnchor reports whether anchor names a page section.
func IsNavAnchor(anchor string) bool {
	for _, item := range navItems {
		if item.Anchor == anchor {
			return true
		}
	}
	return false
}
