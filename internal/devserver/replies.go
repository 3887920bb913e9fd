// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package devserver provides a local stand-in for the portfolio
// backend, useful for demos and offline development.
package devserver

import "strings"

// cannedReply is a keyword-matched response with the optional extras
// the real backend can attach.
type cannedReply struct {
	keywords    []string
	message     string
	modalID     string // non-empty: attach an open_modal action
	suggestions []string
}

// cannedReplies is scanned in order; the first keyword hit wins.
var cannedReplies = []cannedReply{
	{
		keywords: []string{"skill", "stack", "tech", "frontend", "backend"},
		message: "blake works across the stack: react and typescript up front, " +
			"python and node behind, sqlite and postgres underneath. " +
			"take a look at **explore:skills** for the full picture.",
		suggestions: []string{"what projects use that stack?", "how long has blake been coding?"},
	},
	{
		keywords: []string{"project", "built", "keepsake", "dexchat", "caravancraft"},
		message: "recent projects include keepsake (image hosting with sharex " +
			"integration), dexchat (an agentic pokemon chatbot), and " +
			"caravancraft (a managed smp server). details in **explore:projects**.",
		modalID:     "projects",
		suggestions: []string{"tell me about dexchat", "what's blake's preferred stack?"},
	},
	{
		keywords: []string{"work", "job", "experience", "resume", "career", "background"},
		message: "blake has several years of technical support experience across " +
			"Navigate360, Affinitiv, Logicom USA, and unisys, with a steady " +
			"shift toward fullstack work. see **explore:resume**.",
		modalID: "resume",
	},
	{
		keywords: []string{"who", "blake", "about"},
		message: "blake is a fullstack dev with roots in networking, sysadmin " +
			"work, and tech support. the longer story lives in **explore:whoami**.",
		suggestions: []string{"what are blake's skills?", "what's blake's recent work?"},
	},
	{
		keywords: []string{"contact", "email", "reach", "hire", "touch"},
		message:  "the best ways to reach blake are listed in **explore:contact**.",
		modalID:  "contact",
	},
}

// defaultReply answers anything the keyword table misses.
var defaultReply = cannedReply{
	message: "i can talk about blake's background, skills, projects, or how " +
		"to get in touch. what would you like to know?",
	suggestions: []string{"who is blake?", "what projects has blake built?", "what are blake's skills?"},
}

// pickReply matches the message against the canned table.
func pickReply(message string) cannedReply {
	lower := strings.ToLower(message)
	for _, r := range cannedReplies {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r
			}
		}
	}
	return defaultReply
}
