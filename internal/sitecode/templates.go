package sitecode

import (
	"fmt"
	"strings"

	"github.com/sitegenio/sitegen-backend/internal/designs"
)

// fallbackArtifact interpolates the design's palette and fonts into fixed
// templates. Pure string construction, so it cannot fail.
func fallbackArtifact(d designs.Design) Artifact {
	rep := templateReplacer(d)

	artifact := Artifact{
		DesignID:   d.ID,
		HTML:       rep.Replace(htmlTemplate),
		CSS:        rep.Replace(cssTemplate),
		JavaScript: jsTemplate,
		Framework: FrameworkFiles{
			Pages: []NamedFile{
				{Name: "Home", Code: rep.Replace(homePageTemplate)},
			},
			Components: []NamedFile{
				{Name: "Layout", Code: rep.Replace(layoutComponentTemplate)},
				{Name: "Header", Code: rep.Replace(headerComponentTemplate)},
				{Name: "Hero", Code: rep.Replace(heroComponentTemplate)},
				{Name: "Services", Code: rep.Replace(servicesComponentTemplate)},
				{Name: "ContactForm", Code: rep.Replace(contactFormComponentTemplate)},
				{Name: "Footer", Code: rep.Replace(footerComponentTemplate)},
			},
			Styles: []NamedFile{
				{Name: "globals", Code: rep.Replace(globalsStyleTemplate)},
			},
		},
	}
	artifact.Normalize()
	return artifact
}

func templateReplacer(d designs.Design) *strings.Replacer {
	tagline := d.Description
	if tagline == "" {
		tagline = fmt.Sprintf("Welcome to %s", d.CompanyName)
	}

	return strings.NewReplacer(
		"{{COMPANY}}", d.CompanyName,
		"{{TAGLINE}}", tagline,
		"{{PRIMARY}}", d.ColorPalette.Primary,
		"{{SECONDARY}}", d.ColorPalette.Secondary,
		"{{ACCENT}}", d.ColorPalette.Accent,
		"{{BACKGROUND}}", d.ColorPalette.Background,
		"{{TEXT}}", d.ColorPalette.Text,
		"{{HEADING_FONT}}", d.Typography.HeadingFont,
		"{{BODY_FONT}}", d.Typography.BodyFont,
	)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{COMPANY}}</title>
  <link rel="stylesheet" href="styles.css" />
</head>
<body>
  <header class="site-header">
    <div class="brand">{{COMPANY}}</div>
    <nav>
      <a href="#about">About</a>
      <a href="#services">Services</a>
      <a href="#contact">Contact</a>
    </nav>
  </header>
  <section class="hero">
    <h1>{{COMPANY}}</h1>
    <p>{{TAGLINE}}</p>
    <a class="cta" href="#contact">Get in touch</a>
  </section>
  <section id="services" class="services">
    <h2>What we do</h2>
    <div class="service-grid"></div>
  </section>
  <section id="contact" class="contact">
    <h2>Contact us</h2>
    <form id="contact-form">
      <input type="text" name="name" placeholder="Your name" required />
      <input type="email" name="email" placeholder="Your email" required />
      <textarea name="message" placeholder="How can we help?" required></textarea>
      <button type="submit">Send</button>
    </form>
  </section>
  <footer class="site-footer">
    <p>&copy; {{COMPANY}}. All rights reserved.</p>
  </footer>
  <script src="main.js"></script>
</body>
</html>
`

const cssTemplate = `:root {
  --color-primary: {{PRIMARY}};
  --color-secondary: {{SECONDARY}};
  --color-accent: {{ACCENT}};
  --color-background: {{BACKGROUND}};
  --color-text: {{TEXT}};
  --font-heading: '{{HEADING_FONT}}', sans-serif;
  --font-body: '{{BODY_FONT}}', sans-serif;
}

* { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: var(--font-body);
  background: var(--color-background);
  color: var(--color-text);
  line-height: 1.6;
}

h1, h2, h3 { font-family: var(--font-heading); }

.site-header {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 1rem 2rem;
  background: var(--color-primary);
}

.site-header nav a {
  margin-left: 1.5rem;
  color: var(--color-text);
  text-decoration: none;
}

.hero {
  padding: 6rem 2rem;
  text-align: center;
}

.hero .cta {
  display: inline-block;
  margin-top: 2rem;
  padding: 0.75rem 2rem;
  background: var(--color-accent);
  color: var(--color-text);
  border-radius: 4px;
  text-decoration: none;
}

.services, .contact { padding: 4rem 2rem; }

.contact form {
  display: grid;
  gap: 1rem;
  max-width: 480px;
  margin: 2rem auto 0;
}

.contact input, .contact textarea {
  padding: 0.75rem;
  border: 1px solid var(--color-secondary);
  border-radius: 4px;
  font-family: var(--font-body);
}

.contact button {
  padding: 0.75rem;
  background: var(--color-primary);
  border: none;
  border-radius: 4px;
  cursor: pointer;
}

.site-footer {
  padding: 2rem;
  text-align: center;
  background: var(--color-secondary);
  color: var(--color-background);
}
`

const jsTemplate = `document.addEventListener('DOMContentLoaded', function () {
  var form = document.getElementById('contact-form');
  if (!form) return;
  form.addEventListener('submit', function (e) {
    e.preventDefault();
    form.reset();
    alert('Thanks for reaching out. We will get back to you soon.');
  });
});
`

const homePageTemplate = `import Layout from '../components/Layout';
import Hero from '../components/Hero';
import Services from '../components/Services';
import ContactForm from '../components/ContactForm';

export default function Home() {
  return (
    <Layout>
      <Hero />
      <Services />
      <ContactForm />
    </Layout>
  );
}
`

const layoutComponentTemplate = `import Header from './Header';
import Footer from './Footer';

export default function Layout({ children }: { children: React.ReactNode }) {
  return (
    <div className="min-h-screen flex flex-col" style={{ background: '{{BACKGROUND}}', color: '{{TEXT}}' }}>
      <Header />
      <main className="flex-1">{children}</main>
      <Footer />
    </div>
  );
}
`

const headerComponentTemplate = `export default function Header() {
  return (
    <header className="flex items-center justify-between px-8 py-4" style={{ background: '{{PRIMARY}}' }}>
      <span className="text-xl font-bold">{{COMPANY}}</span>
      <nav className="space-x-6">
        <a href="#services">Services</a>
        <a href="#contact">Contact</a>
      </nav>
    </header>
  );
}
`

const heroComponentTemplate = `export default function Hero() {
  return (
    <section className="py-24 text-center">
      <h1 className="text-5xl font-bold" style={{ fontFamily: '{{HEADING_FONT}}' }}>{{COMPANY}}</h1>
      <p className="mt-4 text-lg">{{TAGLINE}}</p>
      <a
        href="#contact"
        className="mt-8 inline-block rounded px-8 py-3"
        style={{ background: '{{ACCENT}}', color: '{{TEXT}}' }}
      >
        Get in touch
      </a>
    </section>
  );
}
`

const servicesComponentTemplate = `export default function Services() {
  return (
    <section id="services" className="px-8 py-16">
      <h2 className="text-3xl font-bold" style={{ color: '{{PRIMARY}}' }}>What we do</h2>
      <div className="mt-8 grid gap-6 md:grid-cols-3" />
    </section>
  );
}
`

const contactFormComponentTemplate = `'use client';

export default function ContactForm() {
  return (
    <section id="contact" className="px-8 py-16">
      <h2 className="text-3xl font-bold">Contact us</h2>
      <form className="mt-8 grid max-w-md gap-4" onSubmit={(e) => e.preventDefault()}>
        <input className="rounded border p-3" type="text" placeholder="Your name" required />
        <input className="rounded border p-3" type="email" placeholder="Your email" required />
        <textarea className="rounded border p-3" placeholder="How can we help?" required />
        <button className="rounded p-3" type="submit" style={{ background: '{{PRIMARY}}' }}>
          Send
        </button>
      </form>
    </section>
  );
}
`

const footerComponentTemplate = `export default function Footer() {
  return (
    <footer className="px-8 py-8 text-center" style={{ background: '{{SECONDARY}}', color: '{{BACKGROUND}}' }}>
      <p>&copy; {{COMPANY}}. All rights reserved.</p>
    </footer>
  );
}
`

const globalsStyleTemplate = `:root {
  --color-primary: {{PRIMARY}};
  --color-secondary: {{SECONDARY}};
  --color-accent: {{ACCENT}};
  --color-background: {{BACKGROUND}};
  --color-text: {{TEXT}};
}

body {
  font-family: '{{BODY_FONT}}', sans-serif;
  background: var(--color-background);
  color: var(--color-text);
}

h1, h2, h3 {
  font-family: '{{HEADING_FONT}}', sans-serif;
}
`
