package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// catalog holds UI strings per base language. English is complete; other
// languages fall back to it key by key.
var catalog = map[string]map[string]string{
	"en": {
		"app.title":             "Kisan Portal",
		"view.prices":           "Prices",
		"view.assistant":        "Assistant",
		"prices.latest":         "Latest",
		"prices.change":         "Change",
		"prices.average":        "Average",
		"prices.range":          "Range",
		"prices.projected":      "Projected",
		"prices.date":           "Date",
		"prices.market":         "Market",
		"prices.district":       "District",
		"prices.variety":        "Variety",
		"prices.min":            "Min",
		"prices.max":            "Max",
		"prices.modal":          "Modal",
		"prices.empty":          "No prices yet",
		"prices.per":            "per",
		"trend.up":              "rising",
		"trend.down":            "falling",
		"trend.flat":            "steady",
		"status.offline":        "Offline",
		"status.connecting":     "Connecting...",
		"status.updated":        "Updated",
		"status.waiting":        "waiting...",
		"status.loading":        "Loading...",
		"status.retrying":       "Retrying...",
		"search.placeholder":    "commodity (e.g. onion)",
		"assistant.placeholder": "Ask the farm assistant",
		"assistant.thinking":    "Thinking...",
		"assistant.empty":       "No questions yet",
		"assistant.you":         "You",
		"assistant.answered":    "Answer ready",
		"help.title":            "Keyboard Shortcuts",
		"help.navigation":       "Navigation",
		"help.search":           "Search",
		"help.general":          "General",
		"theme.light":           "Light",
		"theme.dark":            "Dark",
		"theme.system":          "System",
		"label.theme":           "Theme",
		"label.language":        "Language",
	},
	"hi": {
		"app.title":             "किसान पोर्टल",
		"view.prices":           "भाव",
		"view.assistant":        "सहायक",
		"prices.latest":         "ताज़ा भाव",
		"prices.change":         "बदलाव",
		"prices.average":        "औसत",
		"prices.range":          "सीमा",
		"prices.projected":      "अनुमानित",
		"prices.date":           "तारीख",
		"prices.market":         "मंडी",
		"prices.district":       "ज़िला",
		"prices.variety":        "किस्म",
		"prices.min":            "न्यूनतम",
		"prices.max":            "अधिकतम",
		"prices.modal":          "मॉडल भाव",
		"prices.empty":          "अभी कोई भाव नहीं",
		"prices.per":            "प्रति",
		"trend.up":              "बढ़ रहा है",
		"trend.down":            "घट रहा है",
		"trend.flat":            "स्थिर",
		"status.offline":        "ऑफ़लाइन",
		"status.connecting":     "जुड़ रहा है...",
		"status.updated":        "अपडेट",
		"status.waiting":        "रुकिए...",
		"status.loading":        "लोड हो रहा है...",
		"status.retrying":       "फिर से कोशिश...",
		"search.placeholder":    "फसल (जैसे प्याज़)",
		"assistant.placeholder": "कृषि सहायक से पूछें",
		"assistant.thinking":    "सोच रहा है...",
		"assistant.empty":       "अभी कोई सवाल नहीं",
		"assistant.you":         "आप",
		"assistant.answered":    "जवाब तैयार है",
		"help.title":            "कीबोर्ड शॉर्टकट",
		"help.navigation":       "नेविगेशन",
		"help.search":           "खोज",
		"help.general":          "सामान्य",
		"theme.light":           "हल्का",
		"theme.dark":            "गहरा",
		"theme.system":          "सिस्टम",
		"label.theme":           "थीम",
		"label.language":        "भाषा",
	},
	"mr": {
		"app.title":             "किसान पोर्टल",
		"view.prices":           "भाव",
		"view.assistant":        "सहाय्यक",
		"prices.latest":         "आजचा भाव",
		"prices.change":         "बदल",
		"prices.average":        "सरासरी",
		"prices.range":          "श्रेणी",
		"prices.projected":      "अंदाजित",
		"prices.date":           "तारीख",
		"prices.market":         "बाजार",
		"prices.district":       "जिल्हा",
		"prices.variety":        "वाण",
		"prices.min":            "किमान",
		"prices.max":            "कमाल",
		"prices.modal":          "सर्वसाधारण",
		"prices.empty":          "अजून भाव उपलब्ध नाहीत",
		"prices.per":            "प्रति",
		"trend.up":              "वाढत आहे",
		"trend.down":            "घटत आहे",
		"trend.flat":            "स्थिर",
		"status.offline":        "ऑफलाइन",
		"status.connecting":     "जोडत आहे...",
		"status.updated":        "अद्यतन",
		"status.waiting":        "थांबा...",
		"status.loading":        "लोड होत आहे...",
		"status.retrying":       "पुन्हा प्रयत्न...",
		"search.placeholder":    "पीक (उदा. कांदा)",
		"assistant.placeholder": "कृषी सहाय्यकाला विचारा",
		"assistant.thinking":    "विचार करत आहे...",
		"assistant.empty":       "अजून प्रश्न नाहीत",
		"assistant.you":         "तुम्ही",
		"assistant.answered":    "उत्तर तयार आहे",
		"help.title":            "कीबोर्ड शॉर्टकट",
		"help.navigation":       "नेव्हिगेशन",
		"help.search":           "शोध",
		"help.general":          "सामान्य",
		"theme.light":           "फिकट",
		"theme.dark":            "गडद",
		"theme.system":          "सिस्टम",
		"label.theme":           "थीम",
		"label.language":        "भाषा",
	},
}

// T returns the string for key in lang. Missing translations fall back to
// English, then to the key itself.
func T(lang language.Tag, key string) string {
	base, _ := lang.Base()
	if table, ok := catalog[base.String()]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := catalog["en"][key]; ok {
		return s
	}
	return key
}

// LanguageName returns a language's name in that language, e.g. "मराठी".
func LanguageName(lang language.Tag) string {
	if name := display.Self.Name(lang); name != "" {
		return name
	}
	return lang.String()
}
