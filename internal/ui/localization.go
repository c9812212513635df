package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// supportedLanguages lists the translated languages, English first as the
// fallback
var supportedLanguages = []language.Tag{language.English, language.Russian, language.Portuguese}

var languageMatcher = language.NewMatcher(supportedLanguages)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeyCancel             = "cancel"
	KeyReveal             = "reveal"
	KeyOpenFile           = "open_file"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyDownloadDirectory  = "download_directory"
	KeyEngine             = "engine"
	KeyLogLevel           = "log_level"
	KeyDownloadType       = "download_type"
	KeySave               = "save"
	KeyBrowse             = "browse"
	KeyEnterURL           = "enter_url"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadStarted    = "download_started"
	KeyDownloadComplete   = "download_complete"
	KeyDownloadCancelled  = "download_cancelled"
	KeyAlreadyDownloading = "already_downloading"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyErrorStarting      = "error_starting"
	KeyInvalidURL         = "invalid_url"
	KeyPleaseEnterURL     = "please_enter_url"
	KeySaveCancelled      = "save_cancelled"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the language from
// the locale environment when it is one we have texts for.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage matches the POSIX locale environment against the translated
// languages
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LANG"} {
		locale := os.Getenv(env)
		if i := strings.IndexByte(locale, '.'); i >= 0 {
			locale = locale[:i]
		}
		if locale == "" || locale == "C" || locale == "POSIX" {
			continue
		}

		_, index, confidence := languageMatcher.Match(language.Make(locale))
		if confidence == language.No {
			continue
		}
		base, _ := supportedLanguages[index].Base()
		return base.String()
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "TubeGrab",
		KeyDownload:           "Download",
		KeyCancel:             "Cancel",
		KeyReveal:             "Show in folder",
		KeyOpenFile:           "Open",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyDownloadDirectory:  "Download Directory",
		KeyEngine:             "Download Engine",
		KeyLogLevel:           "Log Level",
		KeyDownloadType:       "Download Type",
		KeySave:               "Save",
		KeyBrowse:             "Browse",
		KeyEnterURL:           "Enter YouTube URL or video id",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyDownloadStarted:    "Download started",
		KeyDownloadComplete:   "Download complete!",
		KeyDownloadCancelled:  "Cancelling download...",
		KeyAlreadyDownloading: "A download is already running",
		KeyErrorOpeningFile:   "Error opening file",
		KeyErrorStarting:      "Could not start download",
		KeyInvalidURL:         "Invalid URL",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeySaveCancelled:      "No file chosen",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "TubeGrab",
		KeyDownload:           "Скачать",
		KeyCancel:             "Отмена",
		KeyReveal:             "Показать в папке",
		KeyOpenFile:           "Открыть",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyDownloadDirectory:  "Папка загрузки",
		KeyEngine:             "Движок загрузки",
		KeyLogLevel:           "Уровень логов",
		KeyDownloadType:       "Тип загрузки",
		KeySave:               "Сохранить",
		KeyBrowse:             "Обзор",
		KeyEnterURL:           "Введите URL YouTube или id видео",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyDownloadStarted:    "Загрузка начата",
		KeyDownloadComplete:   "Загрузка завершена!",
		KeyDownloadCancelled:  "Отмена загрузки...",
		KeyAlreadyDownloading: "Загрузка уже идёт",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyErrorStarting:      "Не удалось начать загрузку",
		KeyInvalidURL:         "Неверный URL",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeySaveCancelled:      "Файл не выбран",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "TubeGrab",
		KeyDownload:           "Baixar",
		KeyCancel:             "Cancelar",
		KeyReveal:             "Mostrar na pasta",
		KeyOpenFile:           "Abrir",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyDownloadDirectory:  "Diretório de Download",
		KeyEngine:             "Mecanismo de Download",
		KeyLogLevel:           "Nível de Log",
		KeyDownloadType:       "Tipo de Download",
		KeySave:               "Salvar",
		KeyBrowse:             "Navegar",
		KeyEnterURL:           "Digite URL do YouTube ou id do vídeo",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyDownloadStarted:    "Download iniciado",
		KeyDownloadComplete:   "Download concluído!",
		KeyDownloadCancelled:  "Cancelando download...",
		KeyAlreadyDownloading: "Um download já está em andamento",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyErrorStarting:      "Não foi possível iniciar o download",
		KeyInvalidURL:         "URL inválida",
		KeyPleaseEnterURL:     "Por favor, digite uma URL",
		KeySaveCancelled:      "Nenhum arquivo escolhido",
	}
}
