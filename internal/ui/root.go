package ui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/config"
	"github.com/ytget/tubegrab/internal/download"
	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/logging"
	"github.com/ytget/tubegrab/internal/model"
	"github.com/ytget/tubegrab/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	downloader   download.Downloader
	settings     *config.Settings
	store        *config.Store
	localization *Localization
	picker       SavePathPicker
	prefs        model.Preferences

	urlEntry    *widget.Entry
	typeSelect  *widget.Select
	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	revealBtn   *widget.Button
	openBtn     *widget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	revealFile func(path string) error
	openFile   func(path string) error

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
}

// NewRootUI creates and initializes the main UI. Redraws requested by the
// download goroutines are marshalled onto the Fyne thread with fyne.Do.
func NewRootUI(window fyne.Window, app fyne.App, fetcher fetch.Fetcher) *RootUI {
	return newRootUI(window, app, fetcher, NewDialogSavePicker(window), fyne.Do)
}

// newRootUI takes the save picker and the redraw scheduler so tests can drive
// rendering by hand
func newRootUI(window fyne.Window, app fyne.App, fetcher fetch.Fetcher, picker SavePathPicker, schedule func(func())) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logrus.WithError(err).Warn("Failed to ensure downloads dir")
	}

	ui := &RootUI{
		window:       window,
		settings:     settings,
		store:        config.NewStore(app.Preferences()),
		localization: localization,
		picker:       picker,
		revealFile:   platform.OpenFileInManager,
		openFile:     platform.OpenFileWithDefaultApp,
	}
	ui.prefs = ui.store.Load()
	ui.downloader = download.NewController(fetcher, func() {
		schedule(ui.render)
	})

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetOnClosed(ui.onClosed)

	ui.setupUI()
	ui.render()

	logrus.WithFields(logrus.Fields{
		"language": localization.GetCurrentLanguage(),
		"type":     ui.prefs.DownloadType.String(),
	}).Info("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = model.ValidateURL
	ui.urlEntry.SetText(ui.prefs.URL)
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.typeSelect = widget.NewSelect(ui.downloadTypeLabels(), nil)
	ui.typeSelect.SetSelected(ui.prefs.DownloadType.String())
	ui.typeSelect.OnChanged = ui.onTypeChanged

	ui.downloadBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyDownload), theme.DownloadIcon(), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.cancelBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyCancel), theme.CancelIcon(), ui.onCancelClick)

	ui.revealBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyReveal), theme.FolderOpenIcon(), ui.onRevealClick)
	ui.revealBtn.Importance = widget.LowImportance

	ui.openBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyOpenFile), theme.FileIcon(), ui.onOpenClick)
	ui.openBtn.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(ui.progressBar.Value*100))
	}
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	// Notification panel under the URL row, hidden by default
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	urlRow := container.NewBorder(nil, nil, settingsBtn, ui.typeSelect, ui.urlEntry)
	actions := container.NewHBox(ui.downloadBtn, ui.cancelBtn, ui.revealBtn, ui.openBtn)

	content := container.NewVBox(
		urlRow,
		ui.notificationContainer,
		actions,
		ui.progressBar,
		ui.statusLabel,
	)

	ui.window.SetContent(container.NewPadded(content))
}

func (ui *RootUI) downloadTypeLabels() []string {
	options := ui.settings.GetDownloadTypeOptions()
	labels := make([]string, 0, len(options))
	for _, t := range options {
		labels = append(labels, t.String())
	}
	return labels
}

// render paints one frame from a single snapshot of the shared state
func (ui *RootUI) render() {
	snap := ui.downloader.Snapshot()
	active := snap.State.IsActive()

	setEnabled(ui.urlEntry, !active)
	setEnabled(ui.typeSelect, !active)
	setEnabled(ui.downloadBtn, !active)
	setEnabled(ui.cancelBtn, active)

	if snap.State == model.StateDone && snap.Destination != "" {
		ui.revealBtn.Show()
		ui.openBtn.Show()
	} else {
		ui.revealBtn.Hide()
		ui.openBtn.Hide()
	}

	switch snap.State {
	case model.StateDownloading:
		ui.progressBar.SetValue(snap.Progress.Fraction)
		ui.progressBar.Show()
		ui.setStatus(byteProgress(snap.Progress), widget.MediumImportance)
	case model.StateDone:
		ui.progressBar.Hide()
		text := ui.localization.GetText(KeyDownloadComplete)
		if snap.Progress.Received > 0 {
			text += MiddleDotSeparator + humanize.Bytes(uint64(snap.Progress.Received))
		}
		ui.setStatus(text, widget.SuccessImportance)
	case model.StateFailed:
		ui.progressBar.Hide()
		failure := model.Failure{Kind: model.FailureTransfer}
		if snap.Failure != nil {
			failure = *snap.Failure
		}
		ui.setStatus(fmt.Sprintf(FailureFormat, IconError, failure.String()), widget.DangerImportance)
	default:
		ui.progressBar.SetValue(0)
		ui.progressBar.Hide()
		ui.setStatus("", widget.MediumImportance)
	}
}

func (ui *RootUI) setStatus(text string, importance widget.Importance) {
	ui.statusLabel.Importance = importance
	ui.statusLabel.SetText(text)
}

// byteProgress formats "3.2 MB / 10 MB", or just the received count while
// the total is unknown
func byteProgress(p model.Progress) string {
	if p.Received <= 0 {
		return ""
	}
	if p.Total <= 0 {
		return humanize.Bytes(uint64(p.Received))
	}
	return fmt.Sprintf(ByteProgressFormat, humanize.Bytes(uint64(p.Received)), humanize.Bytes(uint64(p.Total)))
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.cancelBtn.SetText(ui.localization.GetText(KeyCancel))
	ui.revealBtn.SetText(ui.localization.GetText(KeyReveal))
	ui.openBtn.SetText(ui.localization.GetText(KeyOpenFile))
	ui.render()
}

// onURLChanged persists the edit and re-arms a finished attempt
func (ui *RootUI) onURLChanged(text string) {
	ui.prefs.URL = text
	ui.savePreferences()
	ui.hideNotification()
	ui.downloader.EditURL()
}

func (ui *RootUI) onTypeChanged(label string) {
	ui.prefs.DownloadType = model.ParseDownloadType(label)
	ui.savePreferences()
}

// onDownloadClick validates the URL, asks for a destination and starts the
// attempt. Dismissing the save dialog changes nothing.
func (ui *RootUI) onDownloadClick() {
	urlText := model.CleanURL(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err := model.ValidateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		return
	}
	if ui.downloader.Snapshot().State.IsActive() {
		ui.showNotification(ui.localization.GetText(KeyAlreadyDownloading))
		return
	}

	downloadType := ui.prefs.DownloadType
	ui.picker.PickSavePath(downloadType, ui.settings.GetDownloadDirectory(), func(path string) {
		if path == "" {
			logrus.Debug("Save dialog dismissed, download not started")
			ui.showNotification(ui.localization.GetText(KeySaveCancelled))
			return
		}
		ui.startDownload(urlText, path, downloadType)
	})
}

func (ui *RootUI) startDownload(urlText, path string, downloadType model.DownloadType) {
	if err := platform.EnsureParentDir(path); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("Failed to create destination directory")
	}

	req := model.NewDownloadRequest(urlText, path, downloadType)
	err := ui.downloader.Start(req)
	switch {
	case errors.Is(err, download.ErrAlreadyDownloading):
		ui.showNotification(ui.localization.GetText(KeyAlreadyDownloading))
	case err != nil:
		logrus.WithError(err).Warn("Download not started")
		ui.showNotification(ui.localization.GetText(KeyErrorStarting) + ": " + err.Error())
	default:
		ui.showNotification(ui.localization.GetText(KeyDownloadStarted))
		ui.savePreferences()
	}
	ui.render()
}

func (ui *RootUI) onCancelClick() {
	if !ui.downloader.Snapshot().State.IsActive() {
		return
	}
	ui.showNotification(ui.localization.GetText(KeyDownloadCancelled))
	ui.downloader.Cancel()
}

// onRevealClick opens the file manager at the finished file
func (ui *RootUI) onRevealClick() {
	ui.withFinishedFile(ui.revealFile, "Failed to reveal file")
}

// onOpenClick opens the finished file with the default application
func (ui *RootUI) onOpenClick() {
	ui.withFinishedFile(ui.openFile, "Failed to open file")
}

func (ui *RootUI) withFinishedFile(action func(path string) error, failMsg string) {
	snap := ui.downloader.Snapshot()
	if snap.State != model.StateDone || snap.Destination == "" {
		return
	}
	if err := action(snap.Destination); err != nil {
		logrus.WithError(err).WithField("path", snap.Destination).Warn(failMsg)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, ui.applySettings).Show()
}

// applySettings pushes saved settings into the running app. The engine
// switch takes effect from the next attempt.
func (ui *RootUI) applySettings() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	if err := logging.Setup(ui.settings.GetLogLevel()); err != nil {
		logrus.WithError(err).Warn("Keeping previous log level")
	}

	fetcher, err := fetch.New(ui.settings.GetEngine())
	if err != nil {
		logrus.WithError(err).Warn("Keeping previous fetch engine")
		return
	}
	ui.downloader.SetFetcher(fetcher)
}

// showNotification displays a message in the notification panel under the URL input.
func (ui *RootUI) showNotification(message string) {
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

func (ui *RootUI) hideNotification() {
	ui.notificationLabel.SetText("")
	ui.notificationContainer.Hide()
}

func (ui *RootUI) savePreferences() {
	ui.prefs.URL = strings.TrimSpace(ui.prefs.URL)
	if err := ui.store.Save(ui.prefs); err != nil {
		logrus.WithError(err).Warn("Failed to save preferences")
	}
}

// onClosed persists the preferences and aborts any running attempt
func (ui *RootUI) onClosed() {
	ui.savePreferences()
	ui.downloader.Cancel()
	logrus.Info("Window closed")
}
