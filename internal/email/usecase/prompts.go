package usecase

import (
	"fmt"
	"strings"
)

// Prompt construction for every AI call the workflows make. The model is
// asked for JSON where the caller needs structure, but responses are still
// parsed permissively (see pkg/ai).

const classifyContentLimit = 30000
const summarizeContentLimit = 4000

func classificationPrompt(content string) string {
	return fmt.Sprintf(`Analyze the email content and classify it into one of these categories:
"internship", "spam", "personal", "promotional", "work", or "other".
Also determine if the email's sentiment is "positive", "negative", "neutral", or "urgent".
Provide a confidence level for the classification ("high", "medium", "low").

Respond with a JSON object with "category", "sentiment", and "confidence".
Example: {"category": "internship", "sentiment": "positive", "confidence": "high"}

Email content:
"""
%s
"""`, truncate(content, classifyContentLimit))
}

func extractionPrompt(content string) string {
	return fmt.Sprintf(`Analyze this email content and determine if it's internship-related. If it is, extract the details:

Content: %s

If this is internship-related, return JSON in this exact format:
{
  "isInternship": true,
  "internship": {
    "company": "Company Name",
    "position": "Position Title",
    "status": "Announcement|Applied|Interviewing|Rejected|Offer",
    "date": "YYYY-MM-DD",
    "notes": "Key details and next steps"
  }
}

If this is NOT internship-related, return:
{
  "isInternship": false,
  "internship": null
}

Only return valid JSON, no other text.`, truncate(content, classifyContentLimit))
}

func digestPrompt(snippets []string) string {
	return fmt.Sprintf(`You are an AI email assistant. Write a short, friendly introductory paragraph summarizing the overall state of my inbox in the last 24 hours, as if you're speaking directly to me. Then, add "See the details below:" and provide a summary of each relevant email. Format everything using markdown.

Emails:
%s`, strings.Join(snippets, "\n\n"))
}

func summarizePrompt(body string) string {
	return fmt.Sprintf("Provide a short summary of the following email. Focus on the content and interpret it as raw text, even though it might be html:\n\n%s", truncate(body, summarizeContentLimit))
}

func repliesPrompt(subject, body string) string {
	return fmt.Sprintf(`Generate 3 email reply suggestions for this message. Follow these rules:
1. Use markdown bullet points
2. Start each bullet with "-"
3. Keep replies under 15 words
4. Focus on clarity and professionalism
5. Make sure the responses do not seem generic and actually relate to the email.

Email to reply to:
Subject: %s
Body: %s`, subject, truncate(body, summarizeContentLimit))
}

func rewritePrompt(text, draft, tone string) string {
	return fmt.Sprintf("I received the following email: %s. I wrote the following draft reply:\n\n%s.\nPlease rewrite it in %s tone. Give me just one answer, and dont say anything else, just give me the reply", truncate(text, summarizeContentLimit), draft, tone)
}

func sentimentPrompt(text string) string {
	return fmt.Sprintf("Classify this email's sentiment as positive, neutral, urgent, or negative. Response must be one word:\n\n%s", truncate(text, summarizeContentLimit))
}

func actionsPrompt(text string) string {
	return fmt.Sprintf("Extract clear action items from this email as markdown bullet points:\n\n%s", truncate(text, summarizeContentLimit))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
