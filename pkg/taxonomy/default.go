package taxonomy

// Category names of the built-in taxonomy.
const (
	CategoryProductServices = "Product & Services"
	CategoryBillingPayments = "Billing & Payments"
	CategoryCommunication   = "Communication"
	CategoryAgentSpecific   = "Agent Specific"
	CategorySalesAffiliate  = "Sales / Affiliate Related"
	CategoryMiscellaneous   = "Miscellaneous"
)

// Default returns the built-in debt-settlement review taxonomy.
func Default() *Registry {
	return New([]Category{
		{
			Name: CategoryProductServices,
			Subcategories: map[string][]string{
				SentimentNegative: {
					"Unsettled Debt", "Progress Pace", "Procedure", "Settlement Percentage",
					"Creditor Correspondence", "Debt Priority", "Settlement Failure",
					"Summons", "Legal Procedure", "Legal Plan Representation",
					"Lending", "Unmet Expectations (Services)", "Delayed Cancellation Requests",
				},
				SentimentPositive: {
					"Progress Pace", "Procedure", "Settlement Percentage",
					"Creditor Correspondence", "Debt Priority", "Legal Procedure",
				},
				SentimentNeutral: {
					"Progress Pace", "Procedure", "Settlement Percentage",
					"Creditor Correspondence", "Debt Priority", "Legal Procedure",
					"Unsettled Debt",
				},
			},
		},
		{
			Name: CategoryBillingPayments,
			Subcategories: map[string][]string{
				SentimentNegative: {
					"Fee Collection", "Additional Funds", "Program Extension",
					"Draft Amount", "Delayed Refunds", "Unauthorized Drafts",
					"Fees Amount", "Legal Plan Fees", "Refund Amount",
				},
				SentimentPositive: {
					"Fee Collection", "Timely Refunds", "Fees Amount", "Legal Plan Fees",
				},
				SentimentNeutral: {
					"Fee Collection", "Fees Amount", "Legal Plan Fees",
				},
			},
		},
		{
			Name: CategoryCommunication,
			Subcategories: map[string][]string{
				SentimentNegative: {
					"Frequency of Calls (High)", "Communication Method", "Delayed Responses",
					"No Response", "Unmet Expectations", "Difficulty in Reaching Support",
					"Customer Portal", "Legal Plan Communication",
					"Unclear Communication / Misleading Information", "Frequency of Calls (Low)",
					"Request Not Fulfilled",
				},
				SentimentPositive: {
					"Clear Communication", "Accurate Information", "Frequency of Calls",
					"Communication Method", "Timely Responses", "Ease of Access", "Expectations Met",
				},
				SentimentNeutral: {
					"Communication Method", "Frequency of Calls", "Customer Portal",
				},
			},
		},
		{
			Name: CategoryAgentSpecific,
			Subcategories: map[string][]string{
				SentimentNegative: {
					"False Promises", "Knowledge", "Communication & Soft Skills", "Missed Follow-up",
				},
				SentimentPositive: {
					"Knowledge", "Communication & Soft Skills",
				},
				SentimentNeutral: {
					"Knowledge", "Communication & Soft Skills",
				},
			},
		},
		{
			Name: CategorySalesAffiliate,
			Subcategories: map[string][]string{
				SentimentNegative: {
					"Misrepresentation of Services", "Lack of Follow-up by Affiliate",
					"Misrepresentation of Legal Plan Services",
				},
				SentimentPositive: {
					"Satisfactory Practices",
				},
				SentimentNeutral: {
					"Satisfactory Practices",
				},
			},
		},
		{
			Name: CategoryMiscellaneous,
			Subcategories: map[string][]string{
				SentimentNegative: {
					"Creditor Calls", "Credit Score", "Other", "Scam / Fraud Allegations", "Judgement",
				},
				SentimentPositive: {
					"Credit Score",
				},
				SentimentNeutral: {
					"Credit Score", "Other",
				},
			},
		},
	})
}
