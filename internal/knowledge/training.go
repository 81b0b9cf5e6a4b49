package knowledge

import "github.com/blood-disease-chatbot/internal/domain"

// SymptomDiseases links a symptom key to the diseases it commonly indicates.
type SymptomDiseases struct {
	Symptom  string
	Diseases []string
}

var symptomDiseaseTable = []SymptomDiseases{
	{"fatigue", []string{"anemia", "diabetes", "heart_disease", "thalassemia"}},
	{"weakness", []string{"anemia", "thalassemia"}},
	{"pale_skin", []string{"anemia", "thalassemia"}},
	{"shortness_of_breath", []string{"anemia", "heart_disease", "thalassemia"}},
	{"chest_pain", []string{"heart_disease"}},
	{"dizziness", []string{"anemia", "diabetes"}},
	{"frequent_urination", []string{"diabetes"}},
	{"excessive_thirst", []string{"diabetes"}},
	{"blurred_vision", []string{"diabetes"}},
	{"easy_bruising", []string{"thrombocytopenia"}},
	{"prolonged_bleeding", []string{"thrombocytopenia"}},
	{"nosebleeds", []string{"thrombocytopenia"}},
	{"cold_hands_feet", []string{"anemia"}},
	{"rapid_heartbeat", []string{"anemia", "heart_disease"}},
	{"weight_loss", []string{"diabetes"}},
	{"slow_healing", []string{"diabetes"}},
	{"jaundice", []string{"thalassemia"}},
	{"enlarged_spleen", []string{"thalassemia"}},
}

var trainingExamples = []domain.TrainingExample{
	{
		Input:      "I've been feeling very tired lately and I'm always exhausted",
		Output:     "Fatigue and exhaustion can be symptoms of several blood conditions, particularly anemia. Have you noticed any other symptoms like pale skin, shortness of breath, or dizziness? When did you first start feeling this way?",
		Context:    "symptom_assessment",
		Disease:    "anemia",
		Intent:     "symptom_inquiry",
		Confidence: 0.95,
	},
	{
		Input:      "I bruise easily and my cuts take long to stop bleeding",
		Output:     "Easy bruising and prolonged bleeding are concerning symptoms that could indicate thrombocytopenia or other blood clotting disorders. Have you noticed any other symptoms like nosebleeds or heavy menstrual periods? I'd recommend getting a complete blood count test to check your platelet levels.",
		Context:    "symptom_assessment",
		Disease:    "thrombocytopenia",
		Intent:     "symptom_inquiry",
		Confidence: 0.92,
	},
	{
		Input:      "I've been having chest pain and feel short of breath",
		Output:     "Chest pain and shortness of breath are serious symptoms that require immediate medical attention. These could be signs of heart disease or other cardiovascular issues. If you're experiencing severe chest pain, please seek emergency medical care immediately. Have you checked your cholesterol levels recently?",
		Context:    "emergency_assessment",
		Disease:    "heart_disease",
		Intent:     "urgent_symptoms",
		Confidence: 0.98,
	},
	{
		Input:      "I'm always thirsty and urinate frequently",
		Output:     "Increased thirst and frequent urination are classic symptoms of diabetes. Have you noticed any other symptoms like unexplained weight loss, blurred vision, or slow-healing wounds? I'd strongly recommend getting your blood glucose levels checked as soon as possible.",
		Context:    "symptom_assessment",
		Disease:    "diabetes",
		Intent:     "symptom_inquiry",
		Confidence: 0.96,
	},
	{
		Input:      "My skin looks pale and I feel cold all the time",
		Output:     "Pale skin and feeling cold frequently can be symptoms of anemia, particularly iron-deficiency anemia. Have you noticed any changes in your energy levels, or do you experience shortness of breath during normal activities? A blood test checking your hemoglobin levels would be very helpful.",
		Context:    "symptom_assessment",
		Disease:    "anemia",
		Intent:     "symptom_inquiry",
		Confidence: 0.94,
	},
	{
		Input:      "I have a family history of blood disorders",
		Output:     "Family history is very important for blood disorders, especially conditions like thalassemia which are hereditary. Can you tell me more about the specific blood disorder in your family? Have you experienced any symptoms like fatigue, pale skin, or shortness of breath? I'd recommend genetic counseling and regular blood monitoring.",
		Context:    "family_history",
		Disease:    "thalassemia",
		Intent:     "risk_assessment",
		Confidence: 0.91,
	},
	{
		Input:      "What treatment options are available for anemia?",
		Output:     "Treatment for anemia depends on the underlying cause. Iron-deficiency anemia is often treated with iron supplements and dietary changes including iron-rich foods like red meat, spinach, and beans. Vitamin B12 or folate deficiency anemia requires specific vitamin supplementation. More severe cases might need blood transfusions. It's important to identify and treat the underlying cause.",
		Context:    "treatment_inquiry",
		Disease:    "anemia",
		Intent:     "treatment_information",
		Confidence: 0.93,
	},
	{
		Input:      "How can I manage my diabetes through diet?",
		Output:     "Diabetes management through diet involves controlling carbohydrate intake, choosing low glycemic index foods, and maintaining regular meal timing. Focus on whole grains, lean proteins, healthy fats, and plenty of vegetables. Monitor portion sizes and limit processed foods, sugary drinks, and refined carbohydrates. Regular blood glucose monitoring is essential to see how foods affect your levels.",
		Context:    "treatment_inquiry",
		Disease:    "diabetes",
		Intent:     "lifestyle_management",
		Confidence: 0.95,
	},
	{
		Input:      "What should I do if I have low platelet count?",
		Output:     "Low platelet count (thrombocytopenia) requires careful management to prevent bleeding. Avoid activities that could cause injury, use a soft toothbrush, and be cautious with sharp objects. Treatment depends on the underlying cause - it might include medications to increase platelet production, reducing medications that affect platelets, or in severe cases, platelet transfusions. Regular monitoring is crucial.",
		Context:    "treatment_inquiry",
		Disease:    "thrombocytopenia",
		Intent:     "treatment_information",
		Confidence: 0.90,
	},
	{
		Input:      "What blood tests do I need to check for diabetes?",
		Output:     "For diabetes screening, the main tests include: Fasting Blood Glucose (normal: 70-100 mg/dL), Hemoglobin A1C (normal: <5.7%), and Oral Glucose Tolerance Test. Random blood glucose can also be used. A1C is particularly useful as it shows average blood sugar over 2-3 months. If you have risk factors like family history, obesity, or symptoms, regular screening is important.",
		Context:    "diagnostic_inquiry",
		Disease:    "diabetes",
		Intent:     "test_information",
		Confidence: 0.97,
	},
	{
		Input:      "How do I interpret my blood test results?",
		Output:     "Blood test interpretation depends on the specific parameters. For example: Hemoglobin (normal: 12-16 g/dL for women, 14-18 g/dL for men), Platelets (normal: 150,000-450,000 per microliter), Glucose (normal fasting: 70-100 mg/dL), Cholesterol (total <200 mg/dL desirable). However, results should always be interpreted by a healthcare provider considering your symptoms, medical history, and other factors.",
		Context:    "diagnostic_inquiry",
		Disease:    "general",
		Intent:     "test_interpretation",
		Confidence: 0.89,
	},
	{
		Input:      "How can I prevent heart disease?",
		Output:     "Heart disease prevention involves multiple lifestyle approaches: maintain a healthy diet low in saturated fats and cholesterol, exercise regularly (at least 150 minutes per week), maintain healthy weight, don't smoke, limit alcohol consumption, manage stress, and control blood pressure and diabetes. Regular cholesterol and blood pressure monitoring is essential. A Mediterranean-style diet is particularly beneficial.",
		Context:    "prevention_inquiry",
		Disease:    "heart_disease",
		Intent:     "prevention_information",
		Confidence: 0.94,
	},
	{
		Input:      "What can I do to prevent anemia?",
		Output:     "Anemia prevention focuses on ensuring adequate nutrient intake: eat iron-rich foods (red meat, poultry, fish, beans, spinach), vitamin C helps iron absorption, include B12 sources (dairy, eggs, fortified cereals), and folate-rich foods (leafy greens, citrus fruits). For women, adequate iron intake during menstruation is crucial. Vegetarians may need supplements and should focus on plant-based iron sources with vitamin C.",
		Context:    "prevention_inquiry",
		Disease:    "anemia",
		Intent:     "prevention_information",
		Confidence: 0.92,
	},
	{
		Input:      "I have severe chest pain and difficulty breathing",
		Output:     "URGENT: Severe chest pain and difficulty breathing require immediate emergency medical attention. Please call 911 or go to the nearest emergency room immediately. These symptoms could indicate a heart attack, pulmonary embolism, or other life-threatening conditions. Do not wait or try to treat this yourself. Time is critical in these situations.",
		Context:    "emergency_situation",
		Disease:    "heart_disease",
		Intent:     "emergency_response",
		Confidence: 0.99,
	},
	{
		Input:      "I'm bleeding heavily and can't stop it",
		Output:     "Heavy bleeding that won't stop is a medical emergency. Apply direct pressure to the wound with a clean cloth and elevate the area if possible. If bleeding continues or you feel faint, call 911 immediately. This could indicate a serious bleeding disorder or injury requiring immediate medical intervention. Do not delay seeking emergency care.",
		Context:    "emergency_situation",
		Disease:    "thrombocytopenia",
		Intent:     "emergency_response",
		Confidence: 0.98,
	},
	{
		Input:      "What medications are used for diabetes?",
		Output:     "Diabetes medications include several classes: Metformin (first-line for type 2), Insulin (essential for type 1, sometimes type 2), Sulfonylureas (stimulate insulin production), SGLT2 inhibitors (help kidneys remove glucose), DPP-4 inhibitors (help regulate blood sugar), and GLP-1 agonists (slow digestion, regulate blood sugar). Choice depends on type of diabetes, blood sugar levels, and individual factors. Always consult your doctor for personalized treatment.",
		Context:    "medication_inquiry",
		Disease:    "diabetes",
		Intent:     "medication_information",
		Confidence: 0.91,
	},
	{
		Input:      "How does exercise affect blood sugar?",
		Output:     "Exercise has powerful effects on blood sugar: it increases insulin sensitivity, helps muscles use glucose for energy, and can lower blood sugar for hours after exercise. For people with diabetes, regular exercise can significantly improve blood sugar control. However, monitor blood sugar before, during, and after exercise, especially if taking insulin or other diabetes medications. Start slowly and increase intensity gradually.",
		Context:    "lifestyle_inquiry",
		Disease:    "diabetes",
		Intent:     "lifestyle_counseling",
		Confidence: 0.93,
	},
	{
		Input:      "What are the complications of untreated diabetes?",
		Output:     "Untreated diabetes can lead to serious complications: diabetic retinopathy (eye damage), diabetic nephropathy (kidney damage), diabetic neuropathy (nerve damage), cardiovascular disease, poor wound healing, increased infection risk, and diabetic ketoacidosis (emergency condition). Early detection and proper management can prevent or delay these complications. Regular monitoring and adherence to treatment are crucial.",
		Context:    "complication_inquiry",
		Disease:    "diabetes",
		Intent:     "complication_education",
		Confidence: 0.96,
	},
	{
		Input:      "I'm scared about my blood test results",
		Output:     "It's completely natural to feel scared about blood test results - many people experience anxiety around medical tests. Remember that early detection is actually a positive thing because it allows for early treatment. Many blood conditions are very manageable with proper care. Can you tell me more about what specific results are concerning you? We can discuss what they mean and what steps you can take.",
		Context:    "emotional_support",
		Disease:    "general",
		Intent:     "emotional_counseling",
		Confidence: 0.88,
	},
	{
		Input:      "How do I cope with a chronic blood disorder?",
		Output:     "Living with a chronic blood disorder can be challenging, but many people live full, healthy lives with proper management. Focus on: following your treatment plan consistently, maintaining regular medical check-ups, staying educated about your condition, building a support network, managing stress through relaxation techniques, maintaining a healthy lifestyle, and communicating openly with your healthcare team. Remember, you're not alone in this journey.",
		Context:    "emotional_support",
		Disease:    "general",
		Intent:     "coping_strategies",
		Confidence: 0.90,
	},
}
