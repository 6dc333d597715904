package constant

// Capability names offered to the router. The model must answer with one of them.
const (
	CapabilityStructuredQuery   = "SQLDatabase"
	CapabilityDocumentRetrieval = "FinancialReportSearch"
)

// RouterPromptTemplate takes the user question.
const RouterPromptTemplate = `Based on the user's question, decide which tool is the most appropriate to use.
Your options are:
- 'SQLDatabase': For questions about sales, revenue, products, and regions in the database.
- 'FinancialReportSearch': For questions about financial reports, CEO statements, or uploaded summaries/documents.

User Question: "%s"

Respond with ONLY the name of the tool to use, exactly SQLDatabase or FinancialReportSearch, and nothing else.`

// SynthesisPromptTemplate takes the worker context and the user question.
const SynthesisPromptTemplate = `You are a helpful assistant. Based on the following context that was retrieved,
provide a concise, natural language answer to the user's question. If the context is a JSON object for a chart,
simply return the JSON object as-is.

Context:
%s

User's Question:
%s`

// SQLGenerationPromptTemplate takes the table name, its column listing, the row cap and the question.
const SQLGenerationPromptTemplate = `You are a PostgreSQL expert working with a single read-only table.

Table: %s
Columns:
%s

Write ONE PostgreSQL SELECT statement that answers the question below.
Rules:
- Only SELECT (or WITH ... SELECT). Never modify data.
- Use only the table and columns listed above.
- Alias aggregated columns with readable snake_case names (e.g. total_revenue).
- Return at most %d rows.
- Respond with the SQL only, no explanation.

Question: %s`

// SQLAnswerPromptTemplate takes the question, the executed SQL and the JSON rows.
const SQLAnswerPromptTemplate = `You are a helpful data analyst assistant. You ran a SQL query against the sales database to answer the user's question.

Question: %s

SQL:
%s

Result rows (JSON):
%s

IMPORTANT: If the user asks for a visualization like a 'chart' or 'plot', you MUST format your final response as a single JSON object built from the result rows.

For a BAR CHART, the JSON should look like this:
{
  "comment": "Here is a bar chart showing the total revenue by region.",
  "chart_details": {
    "type": "bar",
    "x_col": "region",
    "y_col": "total_revenue",
    "title": "Total Revenue by Region"
  },
  "data": [ {"region": "North", "total_revenue": 867.5}, ... ]
}

For a PIE CHART, the JSON should look like this:
{
  "comment": "Here is a pie chart showing the revenue distribution by product.",
  "chart_details": {
    "type": "pie",
    "names_col": "product",
    "values_col": "total_revenue",
    "title": "Revenue Distribution by Product"
  },
  "data": [ {"product": "Widget A", "total_revenue": 1130.0}, ... ]
}

If the user asks a regular question, just answer in natural language using the rows. If there are no rows, say that no matching data was found.`

// User-facing messages for failures that abort the pipeline.
const (
	EmptyQuestionMessage    = "Please enter a question."
	RoutingFailureMessage   = "Sorry, I couldn't work out how to answer that question. Please try again."
	SynthesisFailureMessage = "Sorry, an error occurred while generating the answer. Please try again."
	TimeoutMessage          = "The request timed out before an answer could be produced."
)

// Context prefixes used when a worker fails; the synthesizer sees them as ordinary context.
const (
	StructuredFailureContext = "The structured data query failed: "
	RetrievalFailureContext  = "Document retrieval failed: "
)
