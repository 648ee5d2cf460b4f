package services

import (
	"strings"

	"portfolio-backend/internal/models"
)

// HistoryWindow is how many prior turns are replayed to the model.
const HistoryWindow = 6

const SystemPrompt = `You are a professional portfolio generation assistant. Your role is to help users create, optimize, and enhance their professional portfolios.

Key responsibilities:
1. Help users identify and showcase their skills effectively
2. Assist with project descriptions and presentation
3. Provide portfolio structure and design recommendations
4. Offer advice on content organization
5. Generate HTML/CSS code snippets when requested
6. Suggest improvements for existing portfolios

Always be:
- Professional and helpful
- Specific and actionable
- Encouraging and supportive
- Focused on portfolio optimization

When generating code, ensure it's:
- Modern and responsive
- Well-commented
- Accessible
- SEO-friendly

Remember to ask clarifying questions when needed to provide the best assistance.`

const assistPreamble = `You are an AI Portfolio Generator assistant. Help users with:
- Portfolio website development
- Skills and technologies for web developers
- Project ideas and implementation
- HTML, CSS, JavaScript code generation
- Career advice for developers

Be practical, provide code examples when needed, and focus on modern web development practices.`

// BuildChatPrompt renders the preamble, the most recent turns and the new
// message into a single completion prompt ending with an assistant cue.
func BuildChatPrompt(history []models.ChatTurn, message string) string {
	var b strings.Builder

	b.WriteString(SystemPrompt)
	b.WriteString("\n\nCurrent conversation:\n")

	for _, turn := range recentTurns(history, HistoryWindow) {
		b.WriteString(roleLabel(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}

	b.WriteString("User: ")
	b.WriteString(message)
	b.WriteString("\nAssistant: ")

	return b.String()
}

func BuildPortfolioPrompt(requirements, style string) string {
	var b strings.Builder

	b.WriteString("Create a complete HTML portfolio website based on these requirements:\n")
	b.WriteString(requirements)
	b.WriteString("\n\nStyle: ")
	b.WriteString(style)
	b.WriteString(`
Requirements:
- Responsive design
- Modern layout
- Professional appearance
- Include sections for: Header, About, Skills, Projects, Contact
- Use semantic HTML5
- Include CSS in <style> tags
- Make it visually appealing

Generate complete HTML code with embedded CSS:
`)

	return b.String()
}

func BuildAssistPrompt(message string) string {
	var b strings.Builder

	b.WriteString(assistPreamble)
	b.WriteString("\n\nUser Question: ")
	b.WriteString(message)
	b.WriteString("\n\nPlease provide a helpful, detailed response focused on portfolio development:")

	return b.String()
}

func recentTurns(history []models.ChatTurn, n int) []models.ChatTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func roleLabel(role string) string {
	if role == models.RoleUser {
		return "User"
	}
	return "Assistant"
}
