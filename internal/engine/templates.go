package engine

import (
	"fmt"
	"strings"

	"github.com/blood-disease-chatbot/internal/domain"
)

const (
	symptomsDisclaimer      = "\n**Important:** If you're experiencing any of these symptoms, especially if they're severe or persistent, please consult with a healthcare provider for proper evaluation and diagnosis."
	causesDisclaimer        = "\n**Note:** Understanding the causes can help with prevention and early detection. Consult your healthcare provider for personalized risk assessment."
	treatmentDisclaimer     = "\n**Important:** Treatment plans should always be individualized based on your specific condition, severity, and other health factors. Never start or stop treatments without consulting your healthcare provider."
	preventionDisclaimer    = "\n**Remember:** Prevention is often the best medicine. While not all cases can be prevented, following these guidelines can significantly reduce your risk."
	complicationsDisclaimer = "\n**Important:** Early detection and proper treatment can prevent most complications. Regular monitoring and following your healthcare provider's recommendations are essential."
	generalDisclaimer       = "**Note:** This information is for educational purposes. Always consult with healthcare professionals for medical advice."
)

const entityFallback = `I understand you're asking about %s. While I have extensive knowledge about blood diseases and dashboard features, I may not have specific information about your exact question. 

Could you please rephrase your question or ask about:
• Symptoms of specific diseases (diabetes, anemia, heart disease, etc.)
• Causes and risk factors
• Treatment options
• Prevention strategies
• Dashboard features and components
• When to seek medical care

I'm here to help with evidence-based medical information and dashboard guidance!`

// GenericFallback is the help menu returned when nothing in the question is recognised.
const GenericFallback = `I'd be happy to help you with medical information and dashboard features! I can provide detailed, evidence-based answers about:

**Blood Diseases:** Anemia, Thrombocytopenia, Thalassemia
**Chronic Conditions:** Diabetes, Heart Disease
**Dashboard Features:** Live Dashboard, Data Visualization, Demo Section, Real-time Metrics
**General Topics:** Symptoms, Causes, Treatments, Prevention

Could you please ask a specific question about any of these topics? For example:
• "What are the symptoms of anemia?"
• "What causes anemia?"
• "How is diabetes treated?"
• "What's on the dashboard?"
• "How does the demo work?"

I'm here to provide accurate medical information and help you understand the dashboard features better.`

func numbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

func bulleted(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}

// Render produces the response text for a match. Disease-backed entries are
// rendered from the disease table; everything else uses the general layout.
func (e *Engine) Render(m Match) (string, error) {
	entry := m.Entry
	switch entry.Category {
	case domain.CategorySymptoms, domain.CategoryCauses, domain.CategoryTreatment,
		domain.CategoryPrevention, domain.CategoryComplications:
		d, ok := e.base.Disease(entry.Disease)
		if !ok {
			return "", fmt.Errorf("rendering %s: disease %q not in table", entry.Topic, entry.Disease)
		}
		return renderDisease(entry.Category, d), nil
	default:
		return renderGeneral(entry), nil
	}
}

func renderDisease(c domain.Category, d *domain.DiseaseInfo) string {
	var b strings.Builder
	switch c {
	case domain.CategorySymptoms:
		fmt.Fprintf(&b, "**%s - Symptoms & Signs**\n\n", d.Name)
		fmt.Fprintf(&b, "%s\n\n", d.Description)
		b.WriteString("**Common symptoms include:**\n")
		numbered(&b, d.Symptoms)
		b.WriteString(symptomsDisclaimer)

	case domain.CategoryCauses:
		fmt.Fprintf(&b, "**%s - Causes & Risk Factors**\n\n", d.Name)
		b.WriteString("**Main causes include:**\n")
		numbered(&b, d.Causes)
		if len(d.RiskFactors) > 0 {
			b.WriteString("\n**Risk factors:**\n")
			bulleted(&b, d.RiskFactors)
		}
		b.WriteString(causesDisclaimer)

	case domain.CategoryTreatment:
		fmt.Fprintf(&b, "**%s - Treatment Options**\n\n", d.Name)
		b.WriteString("**Available treatments include:**\n")
		numbered(&b, d.Treatments)
		if len(d.DiagnosticTests) > 0 {
			b.WriteString("\n**Diagnostic tests may include:**\n")
			bulleted(&b, d.DiagnosticTests)
		}
		b.WriteString(treatmentDisclaimer)

	case domain.CategoryPrevention:
		fmt.Fprintf(&b, "**%s - Prevention Strategies**\n\n", d.Name)
		fmt.Fprintf(&b, "**To help prevent %s, consider these strategies:**\n", strings.ToLower(d.Name))
		numbered(&b, d.Preventions)
		b.WriteString(preventionDisclaimer)

	case domain.CategoryComplications:
		fmt.Fprintf(&b, "**%s - Potential Complications**\n\n", d.Name)
		fmt.Fprintf(&b, "**If left untreated, %s may lead to:**\n", strings.ToLower(d.Name))
		numbered(&b, d.Complications)
		b.WriteString(complicationsDisclaimer)
	}
	return b.String()
}

func renderGeneral(entry domain.KnowledgeEntry) string {
	var b strings.Builder
	title := strings.ToUpper(strings.ReplaceAll(entry.Topic, "_", " "))
	fmt.Fprintf(&b, "**Medical Information - %s**\n\n", title)

	for _, s := range entry.Sections {
		if s.Items != nil {
			fmt.Fprintf(&b, "**%s:**\n", s.Title)
			numbered(&b, s.Items)
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "**%s:** %s\n\n", s.Title, s.Text)
	}

	b.WriteString(generalDisclaimer)
	return b.String()
}

// Fallback is the response when no entry clears the threshold.
func (e *Engine) Fallback(a Analysis) string {
	if len(a.Entities) > 0 {
		return fmt.Sprintf(entityFallback, strings.Join(a.Entities, ", "))
	}
	return GenericFallback
}
