package view

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// PageConfig holds the document metadata.
type PageConfig struct {
	Title       string
	Description string
}

// Layout wraps body content in the HTML5 document shell.
func Layout(cfg PageConfig, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:       cfg.Title,
		Description: cfg.Description,
		Language:    "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(Rel("icon"), Href("/favicon.ico")),
			StyleEl(g.Raw(stylesheet)),
		},
		Body: []g.Node{
			Div(Class("page"), g.Group(body)),
		},
	})
}

const stylesheet = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,sans-serif;color:#1f1235;background:#faf7ff}
a{color:inherit}
.site-header{display:flex;justify-content:space-between;align-items:center;padding:1rem 2rem;background:#4c1d95;color:#fff;position:sticky;top:0}
.site-header h1{font-size:1.5rem;margin:0}
.nav-desktop a{margin-left:1.5rem;text-decoration:none;color:#fde68a}
.nav-mobile ul{list-style:none;margin:0;padding:1rem 2rem;background:#5b21b6}
.nav-mobile button,.link-button{background:none;border:0;color:#fde68a;font:inherit;cursor:pointer;padding:.25rem 0}
.hero{padding:6rem 2rem;text-align:center;background:linear-gradient(135deg,#4c1d95,#a21caf);color:#fff}
.hero h2{font-size:2.5rem;margin:0 0 1rem}
.btn{display:inline-block;padding:.75rem 1.5rem;border-radius:.5rem;border:0;background:#6d28d9;color:#fff;font:inherit;cursor:pointer;text-decoration:none}
.btn-secondary{background:#fde68a;color:#4c1d95}
.btn[disabled]{opacity:.6;cursor:not-allowed}
section{padding:4rem 2rem}
section h2{text-align:center;color:#5b21b6}
.services{display:grid;gap:1.5rem;grid-template-columns:repeat(auto-fit,minmax(18rem,1fr))}
.service-card{width:100%;text-align:left;background:#fff;border:1px solid #ede9fe;border-radius:.75rem;padding:1.5rem;cursor:pointer;font:inherit}
.service-card.active{border-color:#6d28d9}
.service-details{margin-top:1rem;color:#4b5563}
.chevron{display:inline-block;transition:transform .3s}
.service-card.active .chevron{transform:rotate(180deg)}
.contact{text-align:center}
.site-footer{padding:2rem;text-align:center;background:#2e1065;color:#fff}
.site-footer a{margin:0 .5rem;color:#fde68a}
.modal-backdrop{position:fixed;inset:0;background:rgba(0,0,0,.5);display:flex;align-items:center;justify-content:center}
.modal{background:#fff;border-radius:.75rem;padding:2rem;width:min(32rem,90vw)}
.modal-header{display:flex;justify-content:space-between;align-items:center}
.modal label{display:block;margin-top:1rem;font-weight:600}
.modal input,.modal textarea{width:100%;padding:.5rem;margin-top:.25rem;border:1px solid #d1d5db;border-radius:.375rem;font:inherit}
.modal .btn{margin-top:1.5rem;width:100%}
.toasts{position:fixed;right:1rem;bottom:1rem;display:flex;flex-direction:column;gap:.5rem}
.toast{padding:1rem 1.25rem;border-radius:.5rem;color:#fff;box-shadow:0 4px 12px rgba(0,0,0,.15)}
.toast-success{background:#15803d}
.toast-error{background:#b91c1c}
@media(min-width:768px){.menu-toggle,.nav-mobile{display:none}}
@media(max-width:767px){.nav-desktop{display:none}}
`
