package task

import (
	"fmt"
	"strings"

	"github.com/pdfsift/pdfsift/constants"
)

// documentPlaceholder marks the insertion point for the normalized document
// text inside a user prompt template.
const documentPlaceholder = "{{document}}"

// jsonContract is the shared output instruction appended to every user
// prompt. Every task asks for the same result shape so downstream parsing
// and reporting stay uniform.
const jsonContract = "Respond with a JSON object containing:\n" +
	"- 'document_type': the type of document\n" +
	"- 'summary': a concise summary of the main content (2-3 sentences)\n" +
	"- 'key_insights': array of the 3-5 most important insights or findings\n" +
	"- 'recommendations': array of actionable recommendations (if applicable)\n" +
	"- 'confidence_score': your confidence in the analysis (a number from 0 to 1)\n"

// Definition is one immutable analysis task: how to prompt the backend and
// what to emit when the backend cannot be used.
type Definition struct {
	ID          constants.Task
	Description string

	SystemPrompt string
	// UserTemplate must contain documentPlaceholder exactly once.
	UserTemplate string

	FallbackDocumentType string
	FallbackSummary      string
	// Disclaimer is surfaced in the report for tasks that need one (medical).
	Disclaimer string
}

// RenderUserPrompt substitutes the document text into the template.
func (d Definition) RenderUserPrompt(text string) string {
	return strings.ReplaceAll(d.UserTemplate, documentPlaceholder, text)
}

// UnknownTaskError reports an unrecognized task identifier.
type UnknownTaskError struct {
	ID string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task %q, available tasks: %s", e.ID, strings.Join(constants.AllTasks(), ", "))
}

// Resolve returns the definition for a task identifier. The identifier must
// canonicalize to one of the recognized tasks.
func Resolve(id string) (Definition, error) {
	t, ok := constants.CanonicalizeTask(id)
	if !ok {
		return Definition{}, &UnknownTaskError{ID: id}
	}
	return registry[t], nil
}

// List returns all definitions in their canonical order.
func List() []Definition {
	out := make([]Definition, 0, len(registry))
	for _, id := range constants.AllTasks() {
		out = append(out, registry[constants.Task(id)])
	}
	return out
}

var registry = map[constants.Task]Definition{
	constants.TaskGeneral: {
		ID:          constants.TaskGeneral,
		Description: "General purpose document analysis and summarization",
		SystemPrompt: "You are an expert document analyst. Your task is to analyze documents " +
			"and provide comprehensive insights, summaries, and structured information. " +
			"Always respond with valid JSON format.",
		UserTemplate: "Analyze the following document and provide a comprehensive analysis. " +
			jsonContract +
			"\nDocument text:\n" + documentPlaceholder,
		FallbackDocumentType: "Unknown Document",
		FallbackSummary: "Automated analysis was unavailable. The document text was extracted " +
			"successfully, but no language model backend could be reached to analyze it.",
	},
	constants.TaskSummary: {
		ID:          constants.TaskSummary,
		Description: "Focused document summarization with key points extraction",
		SystemPrompt: "You are an expert at creating concise, accurate summaries of documents. " +
			"Focus on extracting the most important information and presenting it clearly. " +
			"Always respond with valid JSON format.",
		UserTemplate: "Create a comprehensive summary of the following document. Put the most " +
			"important points into 'key_insights' and the main conclusion at the end of 'summary'. " +
			jsonContract +
			"\nDocument text:\n" + documentPlaceholder,
		FallbackDocumentType: "Document",
		FallbackSummary: "Automated summarization was unavailable because no language model " +
			"backend could be reached.",
	},
	constants.TaskMedical: {
		ID:          constants.TaskMedical,
		Description: "Specialized analysis for medical reports and health documents",
		SystemPrompt: "You are a senior medical analyst with expertise in clinical pathology. " +
			"Analyze medical laboratory reports with extreme attention to detail. " +
			"Extract test results, reference ranges, and flags, and provide clinical insights " +
			"and specific recommendations. Always respond with valid JSON format.",
		UserTemplate: "Comprehensively analyze this medical laboratory report. Set 'document_type' " +
			"to the kind of medical document (e.g. 'Medical Laboratory Report'). Put clinical " +
			"interpretations of each test category into 'key_insights', including actual values and " +
			"reference ranges, and specific medical follow-ups into 'recommendations'. " +
			jsonContract +
			"\nMedical report text:\n" + documentPlaceholder,
		FallbackDocumentType: "Medical Laboratory Report",
		FallbackSummary: "Automated clinical analysis was unavailable because no language model " +
			"backend could be reached. The extracted report text was not interpreted.",
		Disclaimer: "This analysis is for informational purposes only and should not replace " +
			"professional medical advice, diagnosis, or treatment. All findings must be clinically " +
			"correlated by a qualified healthcare provider.",
	},
	constants.TaskInvoice: {
		ID:          constants.TaskInvoice,
		Description: "Specialized analysis for invoices, bills, and financial documents",
		SystemPrompt: "You are a financial document analysis expert. Extract and organize " +
			"information from invoices, bills, receipts, and financial statements. " +
			"Focus on accuracy and completeness of financial data extraction. " +
			"Always respond with valid JSON format.",
		UserTemplate: "Analyze this financial document. Set 'document_type' to the kind of " +
			"financial document (invoice, receipt, bill, statement). Put vendor, customer, " +
			"document numbers, dates, totals, taxes, and payment terms into 'key_insights', and " +
			"any discrepancies or follow-ups into 'recommendations'. " +
			jsonContract +
			"\nFinancial document text:\n" + documentPlaceholder,
		FallbackDocumentType: "Financial Document",
		FallbackSummary: "Automated financial analysis was unavailable because no language model " +
			"backend could be reached.",
	},
	constants.TaskResearch: {
		ID:          constants.TaskResearch,
		Description: "Specialized analysis for research papers and academic documents",
		SystemPrompt: "You are an academic research analysis expert. Analyze research papers, " +
			"academic articles, and scholarly documents to extract key research components " +
			"and evaluate research quality. Always respond with valid JSON format.",
		UserTemplate: "Analyze this research document. Set 'document_type' to the kind of academic " +
			"document (research paper, thesis, review). Put the research question, methodology, " +
			"key findings, and limitations into 'key_insights', and future directions or practical " +
			"applications into 'recommendations'. " +
			jsonContract +
			"\nResearch document text:\n" + documentPlaceholder,
		FallbackDocumentType: "Research Document",
		FallbackSummary: "Automated research analysis was unavailable because no language model " +
			"backend could be reached.",
	},
}
