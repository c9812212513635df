package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tubegrab/internal/model"
)

// SavePathPicker asks the user where to write a download. done receives an
// empty path when the user dismissed the dialog.
type SavePathPicker interface {
	PickSavePath(downloadType model.DownloadType, dir string, done func(path string))
}

// DialogSavePicker shows the Fyne file-save dialog
type DialogSavePicker struct {
	window fyne.Window
}

// NewDialogSavePicker creates a picker parented to window
func NewDialogSavePicker(window fyne.Window) *DialogSavePicker {
	return &DialogSavePicker{window: window}
}

// PickSavePath suggests soundtrack.mp3 or video.mp4 inside dir, filtered by
// the type's extension
func (p *DialogSavePicker) PickSavePath(downloadType model.DownloadType, dir string, done func(path string)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			logrus.WithError(err).Warn("Save dialog failed")
			done("")
			return
		}
		if writer == nil {
			done("")
			return
		}

		path := writer.URI().Path()
		// The fetcher reopens the path itself
		if err := writer.Close(); err != nil {
			logrus.WithError(err).WithField("path", path).Debug("Closing placeholder file failed")
		}
		done(path)
	}, p.window)

	d.SetFileName(downloadType.SuggestedFileName())
	d.SetFilter(storage.NewExtensionFileFilter([]string{downloadType.Extension()}))

	if dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(lister)
		} else {
			logrus.WithError(err).WithField("dir", dir).Debug("Cannot open download directory in dialog")
		}
	}

	d.Show()
}
