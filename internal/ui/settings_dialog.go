package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/tubegrab/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	onSaved      func()
	dialog       *dialog.ConfirmDialog

	downloadDirEntry *widget.Entry
	engineSelect     *widget.Select
	languageSelect   *widget.Select
	logLevelSelect   *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// settings were written and may be nil.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.engineSelect = widget.NewSelect(sd.settings.GetEngineOptions(), nil)
	sd.logLevelSelect = widget.NewSelect(sd.settings.GetLogLevelOptions(), nil)

	// Languages are shown by display name, sorted for a stable order
	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := widget.NewForm(
		widget.NewFormItem(sd.localization.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(sd.localization.GetText(KeyEngine), sd.engineSelect),
		widget.NewFormItem(sd.localization.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(sd.localization.GetText(KeyLogLevel), sd.logLevelSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.engineSelect.SetSelected(sd.settings.GetEngine())
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes the form values; empty fields keep the stored setting
func (sd *SettingsDialog) save() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	if sd.engineSelect.Selected != "" {
		sd.settings.SetEngine(sd.engineSelect.Selected)
	}
	if sd.logLevelSelect.Selected != "" {
		sd.settings.SetLogLevel(sd.logLevelSelect.Selected)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
