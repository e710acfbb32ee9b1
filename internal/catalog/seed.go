package catalog

import "github.com/doctor-dialogue-server/internal/domain"

// rec keeps the seed table below readable.
func rec(name, symptom string, age domain.AgeGroup, sev domain.Severity, treatment, description, severityInfo, causes, prevention string) domain.ConditionRecord {
	return domain.ConditionRecord{
		Name:         name,
		Symptom:      symptom,
		AgeGroup:     age,
		Severity:     sev,
		Treatment:    treatment,
		Description:  description,
		SeverityInfo: severityInfo,
		Causes:       causes,
		Prevention:   prevention,
	}
}

// seedRecords is the full static condition dataset. Order matters: rows are
// emitted in insertion order, and composite syndromes ("fever and cough",
// "headache and fever", "diarrhea and cough") overlay several named
// conditions under one symptom tag.
var seedRecords = []domain.ConditionRecord{
	rec("fever", "fever", domain.AgeGroupAdult, domain.SeverityMild,
		"Acetaminophen 500mg every 6 hours as needed (max 3g daily).",
		"Fever is a temporary increase in body temperature above the normal range.",
		"Mild to Moderate", "Viral or bacterial infections", "Stay hydrated, rest"),
	rec("fever", "fever", domain.AgeGroupAdult, domain.SeverityModerate,
		"Ibuprofen 400mg every 6 hours as needed (max 3.2g daily).",
		"Fever is a temporary increase in body temperature above the normal range.",
		"Moderate to Severe", "Infections or inflammation", "Monitor temperature, seek doctor if persistent"),
	rec("fever", "fever", domain.AgeGroupAdult, domain.SeveritySevere,
		"Seek medical attention if fever exceeds 103°F or persists beyond 3 days.",
		"Fever is a temporary increase in body temperature above the normal range.",
		"Severe", "Serious infections", "Immediate medical consultation"),
	rec("fever", "fever", domain.AgeGroupChild, domain.SeverityMild,
		"Acetaminophen 10-15mg/kg every 6 hours as needed (max 75mg/kg daily).",
		"Fever in children often indicates an immune response to infection.",
		"Mild", "Viral infections", "Ensure hydration, monitor temperature"),
	rec("fever", "fever", domain.AgeGroupChild, domain.SeverityModerate,
		"Acetaminophen 10-15mg/kg every 6 hours. Consult pediatrician if persistent.",
		"Fever in children often indicates an immune response to infection.",
		"Moderate", "Bacterial infections", "Consult pediatrician if persistent"),
	rec("fever", "fever", domain.AgeGroupChild, domain.SeveritySevere,
		"Seek pediatrician immediately if fever exceeds 102°F or lasts over 24 hours.",
		"Fever in children often indicates an immune response to infection.",
		"Severe", "Serious infections", "Immediate pediatric consultation"),

	rec("cough", "cough", domain.AgeGroupAdult, domain.SeverityMild,
		"Dextromethorphan 10-20mg every 4 hours as needed.",
		"Cough is a reflex to clear the airways of irritants or mucus.",
		"Mild", "Cold or allergies", "Stay hydrated, avoid irritants"),
	rec("cough", "cough", domain.AgeGroupChild, domain.SeverityMild,
		"Honey (for ages 1+), 1-2 tsp at bedtime.",
		"Cough in children can be due to viral infections or irritants.",
		"Mild", "Viral infections", "Use a humidifier, avoid smoke"),

	rec("headache", "headache", domain.AgeGroupAdult, domain.SeverityMild,
		"Ibuprofen 200-400mg every 6 hours as needed (max 3.2g daily).",
		"Headache is pain in the head, often due to tension or dehydration.",
		"Mild to Moderate", "Stress or dehydration", "Stay hydrated, reduce stress"),
	rec("headache", "headache", domain.AgeGroupChild, domain.SeverityMild,
		"Acetaminophen 10-15mg/kg every 6 hours as needed.",
		"Headache in children may be due to fatigue or minor infections.",
		"Mild", "Fatigue or infections", "Ensure rest, monitor symptoms"),

	rec("diarrhea", "diarrhea", domain.AgeGroupAdult, domain.SeverityMild,
		"Loperamide 2mg after each loose stool (max 8mg daily).",
		"Diarrhea involves frequent loose or watery stools.",
		"Mild to Moderate", "Food poisoning or viral infection", "Stay hydrated, eat bland foods"),
	rec("diarrhea", "diarrhea", domain.AgeGroupChild, domain.SeverityMild,
		"Oral rehydration solution (e.g., Pedialyte), 50-100mL/kg over 4 hours.",
		"Diarrhea in children can lead to dehydration if not managed.",
		"Mild", "Viral infections", "Use oral rehydration, avoid sugary drinks"),

	rec("rash", "rash", domain.AgeGroupAdult, domain.SeverityMild,
		"Hydrocortisone cream 1% applied 2-3 times daily for 7 days.",
		"Rash is an area of irritated or swollen skin, often itchy.",
		"Mild", "Allergic reaction", "Avoid irritants, keep skin clean"),
	rec("rash", "rash", domain.AgeGroupAdult, domain.SeverityModerate,
		"Clotrimazole cream 1% applied twice daily for 2 weeks; consult doctor if no improvement.",
		"Rash is an area of irritated or swollen skin, often itchy.",
		"Moderate", "Fungal infection", "Keep area dry, consult doctor if persistent"),
	rec("rash", "rash", domain.AgeGroupAdult, domain.SeveritySevere,
		"Prednisone 20mg daily for 5 days under medical supervision; seek dermatologist immediately.",
		"Rash is an area of irritated or swollen skin, often itchy.",
		"Severe", "Severe allergic reaction", "Seek medical attention"),
	rec("rash", "rash", domain.AgeGroupChild, domain.SeverityMild,
		"Hydrocortisone cream 0.5% applied once daily for 5 days; consult pediatrician.",
		"Rash in children can be due to allergies or infections.",
		"Mild", "Allergic reaction", "Use hypoallergenic products, consult pediatrician"),
	rec("rash", "rash", domain.AgeGroupChild, domain.SeverityModerate,
		"Hydrocortisone cream 0.5% applied twice daily for 7 days; consult pediatrician if persistent.",
		"Rash in children can be due to allergies or infections.",
		"Moderate", "Eczema flare-up", "Keep skin moisturized, avoid triggers"),
	rec("rash", "rash", domain.AgeGroupChild, domain.SeveritySevere,
		"Seek pediatrician immediately if rash spreads or worsens.",
		"Rash in children can be due to allergies or infections.",
		"Severe", "Infection or severe allergy", "Immediate medical consultation"),

	rec("eczema", "eczema", domain.AgeGroupAdult, domain.SeverityMild,
		"Moisturize with Cetaphil twice daily; apply Hydrocortisone 1% as needed for 7 days.",
		"Eczema causes dry, itchy, and inflamed skin patches.",
		"Mild", "Dry skin or irritants", "Moisturize regularly, avoid harsh soaps"),
	rec("eczema", "eczema", domain.AgeGroupAdult, domain.SeverityModerate,
		"Apply Tacrolimus ointment 0.1% twice daily for 2 weeks; consult dermatologist if no relief.",
		"Eczema causes dry, itchy, and inflamed skin patches.",
		"Moderate", "Chronic irritation", "Use fragrance-free products, consult dermatologist"),
	rec("eczema", "eczema", domain.AgeGroupAdult, domain.SeveritySevere,
		"Prednisone 20mg daily for 5 days under medical supervision; seek dermatologist immediately.",
		"Eczema causes dry, itchy, and inflamed skin patches.",
		"Severe", "Infection or severe flare-up", "Seek medical attention"),
	rec("eczema", "eczema", domain.AgeGroupChild, domain.SeverityMild,
		"Moisturize with fragrance-free lotion twice daily; apply Hydrocortisone 0.5% as needed for 5 days.",
		"Eczema in children often appears as itchy patches.",
		"Mild", "Dry skin or allergens", "Use gentle skincare, avoid triggers"),
	rec("eczema", "eczema", domain.AgeGroupChild, domain.SeverityModerate,
		"Moisturize with fragrance-free lotion; apply Tacrolimus ointment 0.03% twice daily for 7 days; consult pediatrician.",
		"Eczema in children often appears as itchy patches.",
		"Moderate", "Chronic irritation", "Keep skin hydrated, consult pediatrician"),
	rec("eczema", "eczema", domain.AgeGroupChild, domain.SeveritySevere,
		"Apply wet wrap therapy with Hydrocortisone 0.5% twice daily for 3 days; seek pediatrician if infection occurs.",
		"Eczema in children often appears as itchy patches.",
		"Severe", "Infection or severe flare-up", "Immediate pediatric consultation"),

	rec("psoriasis", "psoriasis", domain.AgeGroupAdult, domain.SeverityMild,
		"Apply Coal tar ointment 2% nightly for 14 days; use moisturizer daily.",
		"Psoriasis causes thick, scaly patches on the skin.",
		"Mild", "Autoimmune response", "Moisturize, avoid stress"),
	rec("psoriasis", "psoriasis", domain.AgeGroupAdult, domain.SeverityModerate,
		"Apply Calcipotriene ointment 0.005% twice daily for 4 weeks; consult dermatologist.",
		"Psoriasis causes thick, scaly patches on the skin.",
		"Moderate", "Chronic condition", "Use prescribed treatments, consult dermatologist"),
	rec("psoriasis", "psoriasis", domain.AgeGroupAdult, domain.SeveritySevere,
		"Methotrexate 7.5mg weekly under medical supervision; seek dermatologist immediately.",
		"Psoriasis causes thick, scaly patches on the skin.",
		"Severe", "Severe autoimmune flare-up", "Seek medical attention"),
	rec("psoriasis", "psoriasis", domain.AgeGroupChild, domain.SeverityMild,
		"Apply Coal tar ointment 1% nightly for 7 days; use fragrance-free moisturizer daily.",
		"Psoriasis in children presents as scaly patches.",
		"Mild", "Genetic predisposition", "Moisturize, avoid irritants"),
	rec("psoriasis", "psoriasis", domain.AgeGroupChild, domain.SeverityModerate,
		"Apply Calcipotriene ointment 0.005% once daily for 14 days; consult pediatric dermatologist.",
		"Psoriasis in children presents as scaly patches.",
		"Moderate", "Chronic condition", "Use gentle treatments, consult dermatologist"),
	rec("psoriasis", "psoriasis", domain.AgeGroupChild, domain.SeveritySevere,
		"Seek pediatric dermatologist immediately; consider phototherapy under supervision.",
		"Psoriasis in children presents as scaly patches.",
		"Severe", "Severe flare-up", "Immediate medical consultation"),

	rec("acne", "acne", domain.AgeGroupAdult, domain.SeverityMild,
		"Use Benzoyl Peroxide 2.5% gel once daily for 2 weeks.",
		"Acne is a common skin condition where hair follicles become clogged with oil and dead skin cells.",
		"Mild to Severe", "Hormonal changes, bacteria", "Cleanse face regularly"),
	rec("acne", "acne", domain.AgeGroupAdult, domain.SeverityModerate,
		"Use Benzoyl Peroxide 5% gel twice daily for 4 weeks; consult dermatologist if no improvement.",
		"Acne is a common skin condition where hair follicles become clogged with oil and dead skin cells.",
		"Moderate", "Excess oil production", "Avoid oily products, consult dermatologist"),
	rec("acne", "acne", domain.AgeGroupAdult, domain.SeveritySevere,
		"Isotretinoin 0.5mg/kg daily for 4-6 months under medical supervision; seek dermatologist immediately.",
		"Acne is a common skin condition where hair follicles become clogged with oil and dead skin cells.",
		"Severe", "Cystic acne", "Seek medical attention"),
	rec("acne", "acne", domain.AgeGroupChild, domain.SeverityMild,
		"Use Salicylic Acid 0.5% wash once daily; consult pediatrician.",
		"Acne in children can occur due to early hormonal changes.",
		"Mild", "Hormonal changes", "Use gentle cleansers, consult pediatrician"),
	rec("acne", "acne", domain.AgeGroupChild, domain.SeverityModerate,
		"Use Salicylic Acid 1% wash twice daily for 2 weeks; consult pediatrician if persistent.",
		"Acne in children can occur due to early hormonal changes.",
		"Moderate", "Bacterial infection", "Keep skin clean, consult pediatrician"),
	rec("acne", "acne", domain.AgeGroupChild, domain.SeveritySevere,
		"Seek pediatric dermatologist immediately; consider low-dose isotretinoin under supervision.",
		"Acne in children can occur due to early hormonal changes.",
		"Severe", "Severe cystic acne", "Immediate medical consultation"),

	// Composite syndrome: fever and cough.
	rec("fever", "fever and cough", domain.AgeGroupAdult, domain.SeverityMild,
		"Acetaminophen 500mg every 6 hours as needed (max 3g daily).",
		"Fever is a temporary increase in body temperature above the normal range.",
		"Mild to Moderate", "Viral or bacterial infections", "Stay hydrated, rest"),
	rec("cough", "fever and cough", domain.AgeGroupAdult, domain.SeverityMild,
		"Dextromethorphan 10-20mg every 4 hours as needed.",
		"Cough is a reflex to clear the airways of irritants or mucus.",
		"Mild", "Cold or allergies", "Stay hydrated, avoid irritants"),
	rec("fever", "fever and cough", domain.AgeGroupAdult, domain.SeverityModerate,
		"Ibuprofen 400mg every 6 hours as needed (max 3.2g daily).",
		"Fever is a temporary increase in body temperature above the normal range.",
		"Moderate to Severe", "Infections or inflammation", "Monitor temperature, seek doctor if persistent"),
	rec("cough", "fever and cough", domain.AgeGroupAdult, domain.SeverityModerate,
		"Dextromethorphan 10-20mg every 4 hours as needed.",
		"Cough is a reflex to clear the airways of irritants or mucus.",
		"Mild", "Cold or allergies", "Stay hydrated, avoid irritants"),
	rec("fever", "fever and cough", domain.AgeGroupChild, domain.SeveritySevere,
		"Seek pediatrician immediately if fever exceeds 102°F or lasts over 24 hours.",
		"Fever in children often indicates an immune response to infection.",
		"Severe", "Serious infections", "Immediate pediatric consultation"),
	rec("cough", "fever and cough", domain.AgeGroupChild, domain.SeveritySevere,
		"Honey (for ages 1+), 1-2 tsp at bedtime.",
		"Cough in children can be due to viral infections or irritants.",
		"Mild", "Viral infections", "Use a humidifier, avoid smoke"),

	// Composite syndrome: headache and fever.
	rec("headache", "headache and fever", domain.AgeGroupAdult, domain.SeverityMild,
		"Ibuprofen 200-400mg every 6 hours as needed (max 3.2g daily).",
		"Headache is pain in the head, often due to tension or dehydration.",
		"Mild to Moderate", "Stress or dehydration", "Stay hydrated, reduce stress"),
	rec("fever", "headache and fever", domain.AgeGroupAdult, domain.SeverityMild,
		"Acetaminophen 500mg every 6 hours as needed (max 3g daily).",
		"Fever is a temporary increase in body temperature above the normal range.",
		"Mild to Moderate", "Viral or bacterial infections", "Stay hydrated, rest"),
	rec("headache", "headache and fever", domain.AgeGroupChild, domain.SeverityModerate,
		"Acetaminophen 10-15mg/kg every 6 hours as needed.",
		"Headache in children may be due to fatigue or minor infections.",
		"Mild", "Fatigue or infections", "Ensure rest, monitor symptoms"),
	rec("fever", "headache and fever", domain.AgeGroupChild, domain.SeverityModerate,
		"Acetaminophen 10-15mg/kg every 6 hours. Consult pediatrician if persistent.",
		"Fever in children often indicates an immune response to infection.",
		"Moderate", "Bacterial infections", "Consult pediatrician if persistent"),

	// Composite syndrome: diarrhea and cough.
	rec("diarrhea", "diarrhea and cough", domain.AgeGroupAdult, domain.SeverityMild,
		"Loperamide 2mg after each loose stool (max 8mg daily).",
		"Diarrhea involves frequent loose or watery stools.",
		"Mild to Moderate", "Food poisoning or viral infection", "Stay hydrated, eat bland foods"),
	rec("cough", "diarrhea and cough", domain.AgeGroupAdult, domain.SeverityMild,
		"Dextromethorphan 10-20mg every 4 hours as needed.",
		"Cough is a reflex to clear the airways of irritants or mucus.",
		"Mild", "Cold or allergies", "Stay hydrated, avoid irritants"),
	rec("diarrhea", "diarrhea and cough", domain.AgeGroupChild, domain.SeverityModerate,
		"Oral rehydration solution (e.g., Pedialyte), 50-100mL/kg over 4 hours.",
		"Diarrhea in children can lead to dehydration if not managed.",
		"Mild", "Viral infections", "Use oral rehydration, avoid sugary drinks"),
	rec("cough", "diarrhea and cough", domain.AgeGroupChild, domain.SeverityModerate,
		"Honey (for ages 1+), 1-2 tsp at bedtime.",
		"Cough in children can be due to viral infections or irritants.",
		"Mild", "Viral infections", "Use a humidifier, avoid smoke"),
}
