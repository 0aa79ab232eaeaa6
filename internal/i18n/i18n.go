package i18n

// Sélection de texte bilingue côté présentation : chaque entité porte une
// paire (fr, ar) et la langue vient de la requête, jamais du domaine.

const (
	LangFR = "fr"
	LangAR = "ar"
)

// Normalize ramène toute valeur inattendue sur le français
func Normalize(lang string) string {
	if lang == LangAR {
		return LangAR
	}
	return LangFR
}

// Pick retourne la variante correspondant à la langue demandée
func Pick(lang, fr, ar string) string {
	if Normalize(lang) == LangAR {
		return ar
	}
	return fr
}

// Messages destinés à l'utilisateur final du parcours de réservation.
// L'échec générique ne distingue jamais l'étape fautive (elle est loggée,
// pas exposée).
var messages = map[string][2]string{
	"retry":          {"Erreur, veuillez réessayer.", "خطأ، حاول مرة أخرى."},
	"slot_taken":     {"Ce créneau vient d'être pris, choisissez-en un autre.", "تم حجز هذا الوقت للتو، اختر وقتاً آخر."},
	"missing_fields": {"Veuillez remplir tous les champs.", "يرجى ملء جميع الحقول."},
	"empty_services": {"Choisissez au moins un service.", "اختر خدمة واحدة على الأقل."},
	"full_day":       {"Complet ce jour, choisissez une autre date.", "هذا اليوم ممتلئ، اختر يوماً آخر."},
}

func Message(lang, key string) string {
	pair, ok := messages[key]
	if !ok {
		pair = messages["retry"]
	}
	if Normalize(lang) == LangAR {
		return pair[1]
	}
	return pair[0]
}
