package chatbot

import "github.com/blood-disease-chatbot/internal/classifier"

// Greeting is the first message of every session.
const Greeting = "Hello! I'm Dr. CodeNomads, your virtual medical assistant specializing in blood disease analysis and patient care. I'm here to help you understand your blood health, symptoms, treatments, and provide medical guidance. Please feel free to share any concerns or questions you have about your health - I'm here to listen and help. What would you like to discuss today?"

// Apology replaces any answer whose generation failed.
const Apology = "I apologize, but I encountered an error processing your question. Please try rephrasing it or ask me something else about medical topics."

// defaultResponses answer empty input.
var defaultResponses = []string{
	"I want to make sure I understand your concern properly. Could you provide more details about your symptoms or medical question? I'm here to help you with any blood-related health concerns.",
	"I may not have caught all the details of your question. Could you please rephrase it so I can better assist you? I can help with symptoms, treatments, causes, and prevention of blood disorders.",
	"As your virtual doctor, I want to provide you with the most accurate medical information. Could you clarify what specific aspect of your health or blood condition you'd like to discuss?",
	"I don't have specific information on that particular topic, but I'm here to help with blood disease symptoms, treatments, and medical guidance. What specific health concern would you like to address?",
	"I want to ensure I give you the most helpful medical information. Could you tell me more about your symptoms, concerns, or what specific aspect of blood health you'd like to learn about?",
	"Every patient's situation is unique. Could you provide more context about your specific health concern? I can help with diabetes, anemia, thrombocytopenia, thalassemia, and heart disease questions.",
	"I'm committed to helping you understand your health better. Could you be more specific about your medical question? I can provide information about symptoms, treatments, causes, and prevention strategies.",
}

var intentResponses = map[string][]string{
	classifier.IntentSymptomInquiry: {
		"I understand you're experiencing symptoms. Can you describe them in more detail? This will help me provide better guidance about potential conditions and when to seek medical care.",
		"Symptoms can be concerning, but describing them clearly helps in understanding what might be happening. What specific symptoms are you experiencing, and how long have you had them?",
		"Let's work together to understand your symptoms. Can you tell me about their severity, duration, and any patterns you've noticed? This information is crucial for proper assessment.",
	},
	classifier.IntentTreatmentInformation: {
		"Treatment approaches vary depending on the specific condition and its severity. Can you tell me which condition you're asking about? I can provide information about various treatment options.",
		"I'd be happy to discuss treatment options. Each condition has different approaches - some focus on lifestyle changes, others on medications, and some on combination therapies. What specific condition interests you?",
		"Treatment planning is individualized based on many factors. Are you asking about a specific condition? I can explain the general approaches and what to expect.",
	},
	classifier.IntentPreventionInformation: {
		"Prevention is often the best medicine! Many blood disorders can be prevented or their risk reduced through lifestyle modifications. What specific condition would you like prevention information about?",
		"I'm glad you're thinking about prevention - it's a proactive approach to health. Different conditions have different prevention strategies. Which area of blood health are you most concerned about?",
		"Prevention strategies vary by condition but often include diet, exercise, regular monitoring, and avoiding risk factors. What specific condition or risk factors are you concerned about?",
	},
	classifier.IntentEmergencyResponse: {
		"If you're experiencing severe symptoms, it's important to seek immediate medical attention. Can you describe what you're experiencing? Some symptoms require emergency care.",
		"Severe or sudden symptoms should always be evaluated promptly. Are you experiencing chest pain, severe bleeding, difficulty breathing, or other concerning symptoms that need immediate attention?",
		"Your safety is the priority. If you're having severe symptoms, please consider calling emergency services or going to the nearest emergency room. Can you describe what you're experiencing?",
	},
}

var staticBuckets = []bucket{
	staticBucket([]string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening"},
		"Hello! I'm Dr. CodeNomads, your virtual medical assistant specializing in blood disease analysis. I'm here to help you understand your blood test results and provide medical guidance. How may I assist you today?",
		"Good day! I'm Dr. CodeNomads, and I'm here to help you with any questions about blood diseases, symptoms, or medical concerns. Please feel free to share what's on your mind.",
		"Hello there! As your virtual doctor, I'm here to provide you with comprehensive information about blood-related health conditions. What would you like to discuss today?",
	),
	{keywords: []string{"total", "predictions", "total predictions"}, render: totalResponses},
	{keywords: []string{"display", "show", "see", "here"}, render: displayResponses},
	{keywords: []string{"team", "codenomads", "who"}, render: teamResponses},
	staticBucket([]string{"worried", "concerned", "scared", "afraid", "nervous", "anxious"},
		"I understand your concerns, and it's completely natural to feel worried about your health. Let me help you understand your condition better. What specific symptoms or test results are you concerned about?",
		"Your feelings are valid, and I'm here to support you through this. Many health concerns can be managed effectively with proper care. Can you tell me more about what's troubling you?",
		"I can sense your anxiety, and I want to reassure you that we'll work through this together. Many blood conditions are treatable when caught early. What symptoms have you been experiencing?",
	),
	staticBucket([]string{"pain", "hurt", "ache", "discomfort", "sore"},
		"I'm sorry to hear you're experiencing pain. Can you describe the type of pain, its location, and when it started? This will help me better understand your condition.",
		"Pain can be concerning, but it's often your body's way of telling us something needs attention. Where exactly are you feeling this discomfort, and how would you rate it on a scale of 1-10?",
		"I understand pain can be distressing. Let's work together to identify what might be causing it. Can you tell me more about the nature of your pain and any associated symptoms?",
	),
	staticBucket([]string{"tired", "fatigue", "exhausted", "weak", "weakness", "energy"},
		"Fatigue and weakness can be symptoms of various blood conditions, including anemia. Have you noticed any other symptoms like pale skin, shortness of breath, or dizziness? When did you first notice feeling this way?",
		"Persistent fatigue is something we should take seriously. It could indicate several conditions, including anemia or other blood disorders. Are you getting adequate sleep, and have you noticed any changes in your appetite?",
		"I understand how exhausting it can be to feel constantly tired. This could be related to your blood health. Let's explore this - have you had any recent blood tests done?",
	),
	staticBucket([]string{"dizzy", "dizziness", "lightheaded", "faint", "fainting"},
		"Dizziness can be a symptom of anemia or other blood-related conditions. Are you experiencing this dizziness when standing up quickly, or is it constant? Have you noticed any other symptoms like fatigue or pale skin?",
		"Lightheadedness, especially when changing positions, can indicate low blood pressure or anemia. Have you been eating and drinking normally? Any recent changes in your health?",
		"Dizziness is a symptom we shouldn't ignore. It could be related to various conditions including blood disorders. Can you tell me when this started and if anything seems to trigger it?",
	),
	staticBucket([]string{"bleeding", "bruising", "bruise", "blood", "nosebleed"},
		"Unusual bleeding or easy bruising can be signs of thrombocytopenia or other blood clotting disorders. Have you noticed prolonged bleeding from minor cuts, or do you bruise easily even from minor bumps?",
		"Easy bruising and bleeding are important symptoms that we need to evaluate. This could indicate issues with your blood's ability to clot properly. Have you noticed any changes in your menstrual cycle (if applicable) or bleeding from your gums?",
		"Bleeding disorders require prompt attention. Can you tell me more about the type of bleeding you're experiencing? Are you taking any medications that might affect blood clotting?",
	),
	staticBucket([]string{"shortness of breath", "breathless", "breathing", "chest", "heart"},
		"Shortness of breath can be a symptom of anemia or heart-related conditions. Are you experiencing this during physical activity or even at rest? Any chest pain or irregular heartbeat?",
		"Difficulty breathing is a symptom we take seriously. This could be related to anemia, heart disease, or other conditions. When did you first notice this, and does it worsen with activity?",
		"Breathing difficulties can have various causes, including blood disorders that affect oxygen delivery. Have you noticed any swelling in your legs or ankles along with the breathlessness?",
	),
	staticBucket([]string{"prediction", "predictions", "test results", "blood test", "results"},
		"I'd be happy to help you understand your blood test results. Our AI system analyzes multiple blood parameters to identify potential conditions. Can you share your specific test values, or would you like me to explain what different blood markers indicate?",
		"Understanding your blood test results is crucial for your health. Our prediction system has 98.55% accuracy in identifying conditions like diabetes, anemia, and other blood disorders. What specific results would you like me to explain?",
		"Blood test interpretation can be complex, but I'm here to help you understand what your results mean. Each parameter tells us something different about your health. What concerns do you have about your results?",
	),
	staticBucket([]string{"dashboard", "metrics", "statistics", "stats"},
		"The dashboard displays real-time metrics including total predictions, accuracy rate, disease breakdown, and average confidence levels. You can see the most recent predictions and their details.",
		"Our live dashboard shows key statistics about blood disease predictions, including a breakdown of different diseases detected and their relative frequencies.",
		"The metrics dashboard provides insights into prediction patterns, confidence levels, and distribution of different blood diseases detected by our system.",
	),
	staticBucket([]string{"accuracy", "confidence", "reliable"},
		"Our blood disease prediction system has a target accuracy of 98.55%. Each prediction comes with a confidence score that indicates how certain the system is about the result.",
		"The system's predictions are highly reliable with training accuracy of 100% and validation accuracy of 100%. In real-world use, we maintain an accuracy rate above 98%.",
		"Confidence scores for predictions typically range from 75% to 100%, with most predictions having confidence levels above 85%.",
	),
	staticBucket([]string{"parameter", "parameters", "blood test", "test"},
		"Our system analyzes six key blood parameters: glucose, hemoglobin, platelets, cholesterol, white blood cells, and hematocrit to make predictions about potential blood diseases.",
		"Blood parameters used in our prediction model include glucose (for diabetes), hemoglobin and hematocrit (for anemia and thalassemia), platelets (for thrombocytopenia), and cholesterol (for heart disease risk).",
		"To get a prediction, you need to input values for glucose, hemoglobin, platelets, cholesterol, white blood cells, and hematocrit from a blood test.",
	),
	staticBucket([]string{"disease", "diseases", "condition", "conditions", "detect"},
		"Our system can detect several blood-related conditions including Diabetes, Anemia, Thrombocytopenia, Heart Disease, and Thalassemia, as well as confirming healthy blood profiles.",
		"The main diseases our prediction system identifies are: Diabetes (high glucose), Anemia (low hemoglobin), Thrombocytopenia (low platelets), Heart Disease (high cholesterol), and Thalassemia (low hemoglobin and hematocrit).",
		"We can detect 6 different classes of blood conditions, including 5 disease states and healthy profiles.",
	),
	staticBucket([]string{"how", "work", "system", "model"},
		"Our blood disease prediction system uses an ensemble machine learning model that analyzes blood parameters and compares them to patterns seen in known cases of various blood diseases.",
		"The system works by taking blood test parameters as input, processing them through our prediction model, and outputting the most likely condition along with a confidence score.",
		"We use a sophisticated algorithm that considers the relationships between different blood parameters to identify patterns associated with specific blood diseases.",
	),
	staticBucket([]string{"platform", "website", "system"},
		"Our Blood Disease Prediction platform is an AI-powered medical diagnostics system with 98.55%+ accuracy using advanced ensemble methods.",
		"The platform provides real-time monitoring of blood disease classification with live tracking of predictions, model accuracy, and confidence levels.",
		"Our system is designed for resource-constrained environments to improve diagnostic accessibility with medical-grade accuracy.",
	),
	staticBucket([]string{"thank", "thanks"},
		"You're welcome! Feel free to ask if you have any other questions about our blood disease prediction system.",
		"Happy to help! Let me know if you need anything else regarding our platform or prediction system.",
		"Anytime! Don't hesitate to reach out if you have more questions about blood disease predictions.",
	),
	staticBucket([]string{"bye", "goodbye"},
		"Goodbye! Have a great day and thank you for using our Blood Disease Prediction platform!",
		"See you later! Remember to check the dashboard for the latest prediction metrics.",
		"Bye for now! Feel free to return if you have more questions about our platform.",
	),
}
