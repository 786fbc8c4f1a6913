package server

import "html/template"

// layoutHTML wraps every page with the site header and navigation.
// Navigation order matches the real site: the first link for each section
// is the one in the header.
const layoutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>{{.Title}} | Liam Sorsby</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            max-width: 800px;
            margin: 50px auto;
            padding: 20px;
        }
        nav a { margin-right: 16px; }
        h1 { color: #333; }
    </style>
</head>
<body>
    <header>
        <nav>
            <a href="/">Home</a>
            <a href="/blog">Blog</a>
            <a href="/tags">Tags</a>
            <a href="/projects">Projects</a>
            <a href="/about">About</a>
        </nav>
    </header>
    <main>
{{.Body}}
    </main>
</body>
</html>
`

// page is one route of the fixture site.
type page struct {
	Title string
	Body  template.HTML
}

// pages maps each served path to its content.
var pages = map[string]page{
	"/": {
		Title: "Home",
		Body: `        <h1>Hi, I'm Liam</h1>
        <div>Welcome to my website. Recent posts are on the <a href="/blog">blog</a>.</div>`,
	},
	"/about": {
		Title: "About",
		Body: `        <h1>About</h1>
        <h3>Liam Sorsby</h3>
        <div>Principal Site Reliability Engineer</div>`,
	},
	"/blog": {
		Title: "Blog",
		Body: `        <h1>All Posts</h1>
        <ul>
            <li><a href="/blog/hello-world">Hello World</a></li>
        </ul>`,
	},
	"/blog/hello-world": {
		Title: "Hello World",
		Body: `        <h1>Hello World</h1>
        <div>First post.</div>`,
	},
	"/tags": {
		Title: "Tags",
		Body: `        <h1>Tags</h1>
        <ul>
            <li><a href="/tags/sre">sre</a></li>
        </ul>`,
	},
	"/tags/sre": {
		Title: "sre",
		Body: `        <h1>Tagged: sre</h1>
        <ul>
            <li><a href="/blog/hello-world">Hello World</a></li>
        </ul>`,
	},
	"/projects": {
		Title: "Projects",
		Body: `        <h1>Projects</h1>
        <h2>Website</h2>
        <div>The source for this site.</div>
        <h2>Infrastructure As Code (IoC)</h2>
        <div>The infrastructure that hosts it.</div>`,
	},
}

var layout = template.Must(template.New("layout").Parse(layoutHTML))
