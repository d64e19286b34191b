package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const feedbackSystemPrompt = `You are a concise tutor. Compare the user's answer to the question.
%s
Respond in this exact format:

SCORE: [1-5]
VERDICT: [one sentence summary]
MISSING: [bullet list of key points the user missed, or "Nothing, great answer!" if complete]
TIP: [one actionable suggestion to improve their understanding]

Be encouraging but honest. Don't waffle.`

const rephraseSystemPrompt = `Rephrase the following question. Keep the exact same meaning and scope.
Do NOT add hints or change what is being asked. Just word it differently.
Return only the rephrased question, nothing else.`

const wordProblemPrompt = `Create a fun, realistic word problem for this math concept.

Concept: %s
Parameters: %s
The student should calculate: %s

Style example (use a DIFFERENT scenario, be creative!): %s

Rules:
- Make it feel like a real-world situation
- Use the exact parameter values provided
- Be clear about what the student needs to calculate
- Keep it concise (2-3 sentences max)
- Don't reveal the answer or formula

Return only the word problem, nothing else.`

const mathFeedbackPrompt = `The student solved this math problem:

PROBLEM: %s

CONCEPT: %s
CORRECT ANSWER: %.6g
STUDENT'S ANSWER: %.6g
RESULT: %s

Give brief, helpful feedback (2-3 sentences). If wrong, hint at where they might have gone wrong without giving the full solution. If correct, give a quick "well done" with an optional insight about the concept.`

const refineQAPrompt = `You are creating comprehensive study material for a flashcard learning app.

TOPIC: %s

USER'S ROUGH QUESTION:
%s

USER'S ROUGH ANSWER:
%s

Your task is to transform this into HIGH-QUALITY study material:

FOR THE QUESTION:
- Make it clear, precise, and unambiguous
- Keep the original intent but improve the wording

FOR THE ANSWER:
- Create a COMPREHENSIVE reference answer (this will be used to grade recall attempts)
- Include ALL key concepts, definitions, and important details
- Structure it clearly with bullet points or numbered lists where helpful
- Add relevant examples if they aid understanding
- Include any common misconceptions or gotchas
- Use proper technical terminology
- Make it SELF-CONTAINED, assuming the grader has no external knowledge
- Aim for thorough coverage, not brevity

The answer should contain everything someone would need to know to fully understand this topic.
A simple model should be able to grade a user's recall attempt just by comparing against this reference.

Return in this exact format:
QUESTION:
[your improved question]

ANSWER:
[your comprehensive, self-contained reference answer]`

// Feedback is the parsed tutor response for a recall attempt.
type Feedback struct {
	Score   *int
	Verdict string
	Missing string
	Tip     string
	Raw     string
}

// ScoreAnswer asks the active provider to grade a recall attempt. When
// answerText is nil the model falls back to its own knowledge.
func (p *Provider) ScoreAnswer(ctx context.Context, questionText, userAnswer string, answerText *string) (*Feedback, error) {
	referenceBlock := "There is no reference answer. Use your own knowledge to evaluate."
	if answerText != nil && *answerText != "" {
		referenceBlock = "The reference answer is:\n" + *answerText + "\n"
	}

	client, model := p.activeClient()
	raw, err := p.chat(ctx, client, model, []Message{
		{Role: "system", Content: fmt.Sprintf(feedbackSystemPrompt, referenceBlock)},
		{Role: "user", Content: fmt.Sprintf("QUESTION:\n%s\n\nUSER'S ANSWER:\n%s", questionText, userAnswer)},
	}, 0.3, 500)
	if err != nil {
		return nil, err
	}

	return parseFeedback(raw), nil
}

// RephraseQuestion asks the active provider to reword a question while
// preserving its meaning.
func (p *Provider) RephraseQuestion(ctx context.Context, questionText string) (string, error) {
	client, model := p.activeClient()
	raw, err := p.chat(ctx, client, model, []Message{
		{Role: "system", Content: rephraseSystemPrompt},
		{Role: "user", Content: questionText},
	}, 0.7, 200)
	if err != nil {
		return "", err
	}

	rephrased := strings.TrimSpace(raw)
	if rephrased == "" {
		return questionText, nil
	}
	return rephrased, nil
}

// GenerateWordProblem wraps a sampled parameter set in a creative word
// problem. Always uses Gemini.
func (p *Provider) GenerateWordProblem(ctx context.Context, concept string, params map[string]float64, asksFor, example string) (string, error) {
	client, model := p.geminiClient()
	raw, err := p.chat(ctx, client, model, []Message{
		{Role: "user", Content: fmt.Sprintf(wordProblemPrompt, concept, formatParams(params), asksFor, example)},
	}, 0.8, 300)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// MathFeedback generates feedback on a graded numeric answer. Always uses
// Gemini.
func (p *Provider) MathFeedback(ctx context.Context, question, concept string, correctAnswer, userAnswer float64, isCorrect bool) (string, error) {
	result := "INCORRECT ✗"
	if isCorrect {
		result = "CORRECT ✓"
	}

	client, model := p.geminiClient()
	raw, err := p.chat(ctx, client, model, []Message{
		{Role: "user", Content: fmt.Sprintf(mathFeedbackPrompt, question, concept, correctAnswer, userAnswer, result)},
	}, 0.3, 200)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// RefinedQA is the polished question/answer pair returned by RefineQA.
type RefinedQA struct {
	Question string
	Answer   string
	Raw      string
}

// RefineQA polishes a rough question/answer pair into reference-grade study
// material. Always uses Gemini. Falls back to the originals for any part the
// model response omits.
func (p *Provider) RefineQA(ctx context.Context, topic, question, answer string) (*RefinedQA, error) {
	promptAnswer := answer
	if promptAnswer == "" {
		promptAnswer = "(no answer provided, generate a good reference answer)"
	}

	client, model := p.geminiClient()
	raw, err := p.chat(ctx, client, model, []Message{
		{Role: "user", Content: fmt.Sprintf(refineQAPrompt, topic, question, promptAnswer)},
	}, 0.4, 1000)
	if err != nil {
		return nil, err
	}

	return parseRefinedQA(strings.TrimSpace(raw), question, answer), nil
}

// parseFeedback extracts the SCORE/VERDICT/MISSING/TIP lines. Parsing is
// best-effort: malformed lines leave the corresponding field empty.
func parseFeedback(raw string) *Feedback {
	feedback := &Feedback{Raw: raw}

	for _, line := range strings.Split(raw, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(upper, "SCORE:"):
			if score, ok := firstDigit(afterColon(line)); ok {
				feedback.Score = &score
			}
		case strings.HasPrefix(upper, "VERDICT:"):
			feedback.Verdict = strings.TrimSpace(afterColon(line))
		case strings.HasPrefix(upper, "MISSING:"):
			feedback.Missing = strings.TrimSpace(afterColon(line))
		case strings.HasPrefix(upper, "TIP:"):
			feedback.Tip = strings.TrimSpace(afterColon(line))
		}
	}

	return feedback
}

func parseRefinedQA(raw, originalQuestion, originalAnswer string) *RefinedQA {
	refined := &RefinedQA{
		Question: originalQuestion,
		Answer:   originalAnswer,
		Raw:      raw,
	}

	if strings.Contains(raw, "QUESTION:") && strings.Contains(raw, "ANSWER:") {
		parts := strings.SplitN(raw, "ANSWER:", 2)
		question := strings.TrimSpace(strings.Replace(parts[0], "QUESTION:", "", 1))
		answer := ""
		if len(parts) > 1 {
			answer = strings.TrimSpace(parts[1])
		}

		if question != "" {
			refined.Question = question
		}
		if answer != "" {
			refined.Answer = answer
		}
	}

	return refined
}

func afterColon(line string) string {
	if _, rest, ok := strings.Cut(line, ":"); ok {
		return rest
	}
	return ""
}

// firstDigit returns the first digit in s, so "SCORE: 4/5" parses as 4.
func firstDigit(s string) (int, bool) {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return int(r - '0'), true
		}
	}
	return 0, false
}

// formatParams renders parameters as "k = v" pairs in stable name order.
func formatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s = %g", name, params[name]))
	}
	return strings.Join(pairs, ", ")
}
