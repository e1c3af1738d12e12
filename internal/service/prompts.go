package service

import (
	"fmt"
	"strings"
)

// RefusalAnswer is the fixed string the model is instructed to emit when the
// retrieved context does not contain the answer.
const RefusalAnswer = "I cannot find the answer in the provided documents."

const qaPromptTemplate = `You are a technical assistant. Answer the question using only the provided context.
If the answer is not in the context, say %q.

Context:
%s

Question: %s

Detailed answer:`

const analysisPromptTemplate = `You are a professional analyst of product documentation and source code. Analyze the provided documents and highlight their key aspects.

Documents:
%s

The analysis must contain:
1. The main topic of each document
2. Key statements
3. Important details
4. Recommendations for using the information

Analysis:`

const chatSystemPrompt = `You are a helpful AI assistant. Answer questions politely and professionally.`

func renderQAPrompt(context, question string) string {
	return fmt.Sprintf(qaPromptTemplate, RefusalAnswer, context, question)
}

func renderAnalysisPrompt(documents []string) string {
	return fmt.Sprintf(analysisPromptTemplate, strings.Join(documents, "\n\n"))
}
