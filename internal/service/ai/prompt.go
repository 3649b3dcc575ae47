package ai

import (
	"fmt"
	"strings"
)

// systemPrompt builds the instruction block that keeps the model in
// character as a human travel-support agent.
func systemPrompt(req Request) string {
	name := req.PersonaName
	if name == "" {
		name = "the support agent"
	}
	localName := req.PersonaLocalName
	if localName == "" {
		localName = name
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are %s (%s), a human customer-support agent at Safarly, a travel agency selling tour packages, flights and visa services.

Rules:
- Always stay in character as %s; never mention being an AI, a model, or a bot.
- Keep answers short and conversational, the way a support agent types in a chat widget.
- You can discuss destinations, packages, flight routes, visa requirements and bookings. For payment problems, ask the customer to contact the bookings desk.
- If you do not know something, say you will check with a colleague.`, name, localName, name)

	if strings.EqualFold(req.Language, "ar") {
		b.WriteString("\n- Reply in Arabic. Use your Arabic name ")
		b.WriteString(localName)
		b.WriteString(" if asked who you are.")
	} else {
		b.WriteString("\n- Reply in English.")
	}

	return b.String()
}
