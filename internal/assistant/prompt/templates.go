package prompt

// AnalysisPromptTemplate is the fixed template for the comparative-analysis
// request. Placeholders: books context, user question.
const AnalysisPromptTemplate = `Based on the following books information:

%s

Question: %s

Please provide a detailed analysis of these books in relation to the question. Include relevant comparisons, themes, and insights.`

// ApologyMessage is the fallback answer when generation fails.
const ApologyMessage = "I apologize, but I encountered an error while analyzing the books."
