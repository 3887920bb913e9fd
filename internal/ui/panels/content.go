// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panels holds the portfolio content panels and their
// markdown sources.
package panels

// Panel is one navigable content page.
type Panel struct {
	ID       string
	Title    string
	Markdown string
}

// All returns the panels in dock order.
func All() []Panel {
	return []Panel{
		{ID: "whoami", Title: "personal story", Markdown: whoamiMarkdown},
		{ID: "resume", Title: "work experience", Markdown: resumeMarkdown},
		{ID: "skills", Title: "technical skills", Markdown: skillsMarkdown},
		{ID: "projects", Title: "project showcase", Markdown: projectsMarkdown},
		{ID: "contact", Title: "get in touch", Markdown: contactMarkdown},
	}
}

// ByID returns the panel with the given id.
func ByID(id string) (Panel, bool) {
	for _, p := range All() {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

const whoamiMarkdown = `# whoami

fullstack dev with roots in networking, sysadmin work, databases, and
tech support. i like building small, sharp tools and the glue that
keeps them running.

## expertise & interests

- **fullstack dev** - react frontends, python and node backends
- **networking** - fiber, home internet, and the weird middle bits
- **sysadmin** - linux boxes, docker, nginx, keeping things alive
- **database** - sqlite for the small stuff, postgres for the rest
- **tech support** - years of explaining computers to humans
`

const resumeMarkdown = `# work experience

## tier 1 technical support agent - Navigate360
*feb 2024 - present*

- provide technical support to customers by troubleshooting and
  resolving software, hardware, and network related issues.
- provide remote support for more specific hardware and software issues.

## tier 1 technical support agent - Affinitiv
*jan 2023 - dec 2023*

- handled customer complaints and escalated issues according to procedures.
- facilitated communication between car dealerships and the autoloop
  product support teams.

## tier 1 technical support agent - Logicom USA
*jan 2021 - jan 2023*

- answered inbound calls to fix and maintain member's home internet.
- worked alongside on-site team members to fix fiber line technical issues.
- mentored new hires, facilitating their onboarding and training processes.

## tier 1 technical support agent - unisys (contract)
*mar 2020 - jan 2021*

- answer user inquiries regarding computer software or hardware
  operation to resolve problems.
- read technical manuals and confer with users to provide technical
  assistance and support.
`

const skillsMarkdown = `# technical skills

## frontend

react, javascript, typescript, html, css, next.js, vite, tailwind

## backend

python, node.js, flask

## data

sqlite, postgresql

## tooling

docker, nginx, jira, git
`

const projectsMarkdown = `# projects

## keepsake

personal image hosting solution with sharex integration. features a
clean dashboard for managing uploads and provides reliable image
hosting with custom urls.

` + "`typescript` `react` `python` `flask` `sqlite`" + `

## portfolio site

personal resume and portfolio site. built with modern animations,
interactive components, and responsive design.

` + "`react` `typescript` `tailwind`" + `

## caravancraft

personal smp server for my friend group, visualized via site. includes
custom server management, dynmap integration, and player statistics.

` + "`minecraft` `java` `javascript` `docker` `nginx`" + `

## dexchat

an agentic chatbot that can search a large knowledgebase of pokemon
data and answer user queries.

` + "`react` `python` `postgres` `openrouter` `agentic ai`" + `
`

const contactMarkdown = `# get in touch

- **github** - check out my code repositories
- **twitter** - follow me for updates

or just ask the chat to pass a message along.
`
