package deployments

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sitegenio/sitegen-backend/internal/hosting"
	"github.com/sitegenio/sitegen-backend/internal/sitecode"
)

// Fixed Next.js scaffold shipped with every deployment. Generated pages,
// components and styles are layered on top of it.

const packageJSONTemplate = `{
  "name": "%s",
  "version": "0.1.0",
  "private": true,
  "scripts": {
    "dev": "next dev",
    "build": "next build",
    "start": "next start",
    "lint": "next lint"
  },
  "dependencies": {
    "next": "14.2.5",
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  },
  "devDependencies": {
    "@types/node": "^20",
    "@types/react": "^18",
    "@types/react-dom": "^18",
    "autoprefixer": "^10.4.19",
    "eslint": "^8",
    "eslint-config-next": "14.2.5",
    "postcss": "^8.4.38",
    "tailwindcss": "^3.4.4",
    "typescript": "^5"
  }
}
`

const tsconfigJSON = `{
  "compilerOptions": {
    "lib": ["dom", "dom.iterable", "esnext"],
    "allowJs": true,
    "skipLibCheck": true,
    "strict": true,
    "noEmit": true,
    "esModuleInterop": true,
    "module": "esnext",
    "moduleResolution": "bundler",
    "resolveJsonModule": true,
    "isolatedModules": true,
    "jsx": "preserve",
    "incremental": true,
    "plugins": [{ "name": "next" }],
    "paths": { "@/*": ["./*"] }
  },
  "include": ["next-env.d.ts", "**/*.ts", "**/*.tsx", ".next/types/**/*.ts"],
  "exclude": ["node_modules"]
}
`

const eslintrcJSON = `{
  "extends": "next/core-web-vitals"
}
`

const nextConfigJS = `/** @type {import('next').NextConfig} */
const nextConfig = {};

module.exports = nextConfig;
`

const tailwindConfigTS = `import type { Config } from "tailwindcss";

const config: Config = {
  content: [
    "./app/**/*.{js,ts,jsx,tsx,mdx}",
    "./components/**/*.{js,ts,jsx,tsx,mdx}",
  ],
  theme: {
    extend: {},
  },
  plugins: [],
};
export default config;
`

const postcssConfigJS = `module.exports = {
  plugins: {
    tailwindcss: {},
    autoprefixer: {},
  },
};
`

const layoutTSXTemplate = `import type { Metadata } from "next";
import "./globals.css";

export const metadata: Metadata = {
  title: %s,
  description: "Generated website",
};

export default function RootLayout({
  children,
}: Readonly<{
  children: React.ReactNode;
}>) {
  return (
    <html lang="en">
      <body>{children}</body>
    </html>
  );
}
`

// Used when the artifact carries no framework pages. The generated markup is
// rendered as-is and its script is attached on mount.
const staticPageTSXTemplate = `"use client";

import { useEffect } from "react";

const html = %s;
const script = %s;

export default function Home() {
  useEffect(() => {
    if (!script) {
      return;
    }
    const el = document.createElement("script");
    el.textContent = script;
    document.body.appendChild(el);
    return () => {
      document.body.removeChild(el);
    };
  }, []);

  return <div dangerouslySetInnerHTML={{ __html: html }} />;
}
`

// BuildManifest assembles the full upload file set for one artifact.
func BuildManifest(projectName string, art *sitecode.Artifact) []hosting.DeploymentFile {
	files := []hosting.DeploymentFile{
		encodeFile("package.json", fmt.Sprintf(packageJSONTemplate, slugify(projectName))),
		encodeFile("tsconfig.json", tsconfigJSON),
		encodeFile(".eslintrc.json", eslintrcJSON),
		encodeFile("next.config.js", nextConfigJS),
		encodeFile("tailwind.config.ts", tailwindConfigTS),
		encodeFile("postcss.config.js", postcssConfigJS),
		encodeFile("app/layout.tsx", fmt.Sprintf(layoutTSXTemplate, jsString(projectName))),
		encodeFile("app/globals.css", globalsCSS(art)),
	}

	if home, rest := splitPages(art.Framework.Pages); home != "" {
		files = append(files, encodeFile("app/page.tsx", home))
		for _, p := range rest {
			files = append(files, encodeFile(fmt.Sprintf("app/%s/page.tsx", slugify(p.Name)), p.Code))
		}
	} else {
		files = append(files, encodeFile("app/page.tsx",
			fmt.Sprintf(staticPageTSXTemplate, jsString(art.HTML), jsString(art.JavaScript))))
	}

	for _, c := range art.Framework.Components {
		files = append(files, encodeFile(fmt.Sprintf("components/%s.tsx", componentName(c.Name)), c.Code))
	}
	for _, s := range art.Framework.Styles {
		if strings.EqualFold(strings.TrimSuffix(s.Name, ".css"), "globals") {
			continue
		}
		files = append(files, encodeFile(fmt.Sprintf("styles/%s.css", slugify(strings.TrimSuffix(s.Name, ".css"))), s.Code))
	}

	return files
}

// splitPages picks the page that should serve the site root and returns the
// remaining pages for nested routes.
func splitPages(pages []sitecode.NamedFile) (string, []sitecode.NamedFile) {
	home := ""
	rest := make([]sitecode.NamedFile, 0, len(pages))
	for _, p := range pages {
		if p.Code == "" {
			continue
		}
		name := strings.ToLower(strings.TrimSuffix(strings.TrimSuffix(p.Name, ".tsx"), ".jsx"))
		if home == "" && (name == "home" || name == "index" || name == "page") {
			home = p.Code
			continue
		}
		rest = append(rest, p)
	}
	if home == "" && len(rest) > 0 {
		home = rest[0].Code
		rest = rest[1:]
	}
	return home, rest
}

func globalsCSS(art *sitecode.Artifact) string {
	for _, s := range art.Framework.Styles {
		if strings.EqualFold(strings.TrimSuffix(s.Name, ".css"), "globals") && s.Code != "" {
			return s.Code
		}
	}
	return art.CSS
}

func encodeFile(path, content string) hosting.DeploymentFile {
	return hosting.DeploymentFile{
		File:     path,
		Data:     base64.StdEncoding.EncodeToString([]byte(content)),
		Encoding: "base64",
	}
}

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// componentName sanitizes a generated component name into a PascalCase
// filename, keeping existing casing intact.
func componentName(name string) string {
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".tsx"), ".jsx")

	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if upperNext {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			upperNext = false
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			upperNext = false
		default:
			upperNext = true
		}
	}
	if b.Len() == 0 {
		return "Component"
	}
	return b.String()
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "site"
	}
	return out
}
