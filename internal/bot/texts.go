package bot

// Supported languages. Unrecognized labels fall back to Uzbek.
const (
	langUz = "uz"
	langEn = "en"
	langRu = "ru"

	defaultLang = langUz
)

// Language selection button labels, as shown on the keyboard.
const (
	labelUzbek   = "🇺🇿 O'zbekcha"
	labelEnglish = "🇬🇧 English"
	labelRussian = "🇷🇺 Русский"
)

var languageByLabel = map[string]string{
	labelUzbek:   langUz,
	labelEnglish: langEn,
	labelRussian: langRu,
}

const chooseLanguageText = "🌍 Tilni tanlang / Choose language / Выберите язык:"

var welcomeBackTexts = map[string]string{
	langUz: "Xush kelibsiz, %s! 🎮",
	langEn: "Welcome back, %s! 🎮",
	langRu: "Добро пожаловать, %s! 🎮",
}

var askNameTexts = map[string]string{
	langUz: "Ismingizni kiriting:",
	langEn: "Enter your name:",
	langRu: "Введите ваше имя:",
}

var askContactTexts = map[string]string{
	langUz: "Telefon raqamingizni ulashing:",
	langEn: "Share your phone number:",
	langRu: "Поделитесь номером телефона:",
}

var registeredTexts = map[string]string{
	langUz: "✅ Ro'yxatdan o'tdingiz! Endi o'yinlar sahifasiga kiring.",
	langEn: "✅ Registration complete! Now access the Games Dashboard.",
	langRu: "✅ Регистрация завершена! Теперь войдите в панель игр.",
}

var webAppButtonTexts = map[string]string{
	langUz: "🎮 O'yinlar sahifasi",
	langEn: "🎮 Games Dashboard",
	langRu: "🎮 Панель игр",
}

var supportButtonTexts = map[string]string{
	langUz: "📞 Qo'llab-quvvatlash",
	langEn: "📞 Support",
	langRu: "📞 Поддержка",
}

var supportTexts = map[string]string{
	langUz: "📞 Qo'llab-quvvatlash:\n\nSavollaringiz bo'lsa @admin ga murojaat qiling.",
	langEn: "📞 Support:\n\nFor questions, contact @admin.",
	langRu: "📞 Поддержка:\n\nДля вопросов обращайтесь к @admin.",
}

const (
	accessDeniedText = "❌ Access denied."
	adminPanelText   = "🔐 Admin Panel\n\nSelect an option:"
	proApprovedText  = "🎉 Your Pro access has been approved!"
	noPendingText    = "⭐ No pending Pro requests."
	approvedAckText  = "✅ Approved!"
	rejectedAckText  = "❌ Rejected"
	deniedAlertText  = "Access denied"
)

func text(texts map[string]string, lang string) string {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[defaultLang]
}

func languageFromLabel(label string) string {
	if lang, ok := languageByLabel[label]; ok {
		return lang
	}
	return defaultLang
}

func isSupportButton(textMsg string) bool {
	for _, label := range supportButtonTexts {
		if textMsg == label {
			return true
		}
	}
	return false
}
