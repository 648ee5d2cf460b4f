package services

import "strings"

type FallbackKind int

const (
	FallbackHelp FallbackKind = iota
	FallbackSkills
	FallbackProjects
	FallbackHTML
)

// ClassifyFallback picks the canned answer for a message. Order matters: a
// message about "project skills" gets the skills template.
func ClassifyFallback(message string) FallbackKind {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "skill"):
		return FallbackSkills
	case strings.Contains(lower, "project"):
		return FallbackProjects
	case strings.Contains(lower, "html") || strings.Contains(lower, "portfolio"):
		return FallbackHTML
	default:
		return FallbackHelp
	}
}

// FallbackResponse returns static content for when no Gemini key is usable.
func FallbackResponse(message string) string {
	switch ClassifyFallback(message) {
	case FallbackSkills:
		return skillsTemplate
	case FallbackProjects:
		return projectsTemplate
	case FallbackHTML:
		return htmlTemplate
	default:
		return helpTemplate
	}
}

const skillsTemplate = `## Web Developer Skills

**Frontend:**
- HTML5, CSS3, JavaScript (ES6+)
- React, Vue.js, or Angular
- Responsive Design, CSS Frameworks (Bootstrap, Tailwind)
- Version Control (Git)

**Backend:**
- Go, Node.js, or Python
- Databases (PostgreSQL, MySQL, MongoDB)
- RESTful APIs

**Tools:**
- VS Code, Docker
- AWS, Netlify, Vercel
- Postman, Chrome DevTools

*Note: Gemini API key not configured. Set GEMINI_API_KEY in the .env file for AI-powered responses.*`

const projectsTemplate = `## Portfolio Project Ideas

1. **Personal Portfolio Website**
   - Technologies: HTML, CSS, JavaScript
   - Features: Responsive design, project gallery, contact form

2. **Task Management App**
   - Technologies: React, a REST backend, PostgreSQL
   - Features: CRUD operations, user authentication, real-time updates

3. **E-commerce Website**
   - Technologies: React, a REST backend, a payment provider
   - Features: Shopping cart, payment integration, admin panel

*Configure your Gemini API key for personalized project suggestions.*`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My Portfolio</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Welcome to My Portfolio</h1>
        <p>Add your Gemini API key to generate AI-powered portfolio code.</p>
    </div>
</body>
</html>`

const helpTemplate = `I'd be happy to help you with your portfolio! I can assist with:

• **Skills** - Technical and soft skills for web developers
• **Projects** - Portfolio project ideas and implementation
• **HTML Generation** - Complete portfolio website code

To get AI-powered responses, please add your Gemini API key to the .env file.

What would you like to work on today?`
