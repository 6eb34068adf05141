package view

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/models"
)

// HomePage is everything the landing page needs to render one visitor's view.
type HomePage struct {
	StudioName string
	Year       int
	Nav        []models.NavItem
	Services   []models.Service
	State      dto.PageState
}

// Home renders the landing page.
func Home(page HomePage) g.Node {
	return Layout(
		PageConfig{
			Title:       page.StudioName,
			Description: "Creative studio bringing your artistic visions to life.",
		},
		siteHeader(page),
		Main(
			heroSection(),
			aboutSection(page.StudioName),
			servicesSection(page.Services, page.State.ActiveService),
			contactSection(),
		),
		siteFooter(page),
		g.If(page.State.Contact.ModalOpen, contactModal(page.State.Contact)),
		toasts(page.State.Toasts),
	)
}

func siteHeader(page HomePage) g.Node {
	return g.Group{
		Header(
			Class("site-header"),
			H1(g.Text(page.StudioName)),
			Nav(
				Class("nav-desktop"),
				g.Map(page.Nav, func(item models.NavItem) g.Node {
					return A(Href("#"+item.Anchor), g.Text(item.Name))
				}),
			),
			postButton("/ui/menu", "menu-toggle link-button",
				Aria("label", "Toggle menu"),
				Aria("expanded", strconv.FormatBool(page.State.MenuOpen)),
				g.Text(lo.Ternary(page.State.MenuOpen, "✕", "☰")),
			),
		),
		g.If(page.State.MenuOpen, Nav(
			Class("nav-mobile"),
			Ul(g.Map(page.Nav, func(item models.NavItem) g.Node {
				return Li(postButton("/ui/nav/"+item.Anchor, "", g.Text(item.Name)))
			})),
		)),
	}
}

func heroSection() g.Node {
	return Section(
		ID("home"), Class("hero"),
		H2(g.Text("Crafting Artistic Experiences")),
		P(g.Text("We bring your creative visions to life with cutting-edge design and artistry")),
		A(Class("btn btn-secondary"), Href("#contact"), g.Text("Let's Create Together")),
	)
}

func aboutSection(studio string) g.Node {
	return Section(
		ID("about"),
		H2(g.Text("About Us")),
		P(g.Textf("%s is a creative studio dedicated to bringing your artistic visions to life. With our team of skilled designers and artists, we transform ideas into stunning visual realities.", studio)),
		P(g.Text("From brand identities to custom artwork, we're passionate about creating unique, impactful designs that resonate with your audience and elevate your brand.")),
	)
}

func servicesSection(services []models.Service, active *int) g.Node {
	cards := make([]g.Node, 0, len(services))
	for i, svc := range services {
		isActive := active != nil && *active == i
		cards = append(cards, Form(
			Method("post"), Action(fmt.Sprintf("/ui/services/%d", i)),
			Button(
				Type("submit"),
				c.Classes{"service-card": true, "active": isActive},
				Aria("expanded", strconv.FormatBool(isActive)),
				H3(g.Text(svc.Title)),
				P(g.Text(svc.Summary)),
				g.If(isActive, Div(Class("service-details"), g.Text(svc.Description))),
				Span(Class("chevron"), g.Text("⌄")),
			),
		))
	}

	return Section(
		ID("services"),
		H2(g.Text("Our Services")),
		Div(Class("services"), g.Group(cards)),
	)
}

func contactSection() g.Node {
	return Section(
		ID("contact"), Class("contact"),
		H2(g.Text("Get in Touch")),
		P(g.Text("Ready to start your project? We're here to help bring your vision to life.")),
		postButton("/contact/open", "btn", g.Text("Contact Us")),
	)
}

func siteFooter(page HomePage) g.Node {
	return Footer(
		Class("site-footer"),
		P(g.Textf("© %d %s. All rights reserved.", page.Year, page.StudioName)),
		Div(
			A(Href("#"), g.Text("Privacy Policy")),
			A(Href("#"), g.Text("Terms of Service")),
		),
	)
}

func contactModal(state dto.ContactState) g.Node {
	return Div(
		Class("modal-backdrop"),
		Div(
			Class("modal"), Role("dialog"), Aria("modal", "true"), Aria("labelledby", "contact-title"),
			Div(
				Class("modal-header"),
				H3(ID("contact-title"), g.Text("Contact Us")),
				postButton("/contact/close", "link-button", Aria("label", "Close"), g.Text("✕")),
			),
			Form(
				ID("contact-form"), Method("post"), Action("/contact"),
				field("name", "Name", Input(ID("name"), Name("name"), Type("text"), Placeholder("Your name"), Required(), Value(state.Fields.Name))),
				field("email", "Email", Input(ID("email"), Name("email"), Type("email"), Placeholder("Your email"), Required(), Value(state.Fields.Email))),
				field("message", "Message", Textarea(ID("message"), Name("message"), Placeholder("Your message"), Required(), Rows("5"), g.Text(state.Fields.Message))),
				Button(
					Type("submit"), Class("btn"),
					g.If(state.Submitting, Disabled()),
					g.Text(lo.Ternary(state.Submitting, "Sending...", "Send Message")),
				),
			),
		),
	)
}

func field(id, label string, input g.Node) g.Node {
	return Div(
		Label(For(id), g.Text(label)),
		input,
	)
}

func toasts(items []models.Notification) g.Node {
	if len(items) == 0 {
		return nil
	}

	return Div(
		Class("toasts"), Aria("live", "polite"),
		g.Map(items, func(n models.Notification) g.Node {
			return Div(
				Class("toast toast-"+string(n.Level)),
				Role(lo.Ternary(n.Level == models.NotificationError, "alert", "status")),
				g.Text(n.Message),
			)
		}),
	)
}

// postButton renders a single-button form so every toggle works without client script.
func postButton(action, class string, children ...g.Node) g.Node {
	return Form(
		Method("post"), Action(action), Style("display:inline"),
		Button(Type("submit"), g.If(class != "", Class(class)), g.Group(children)),
	)
}
