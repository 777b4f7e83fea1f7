package dialogue

import (
	"errors"
	"fmt"
	"io"

	"PixelDump/convert"
)

// Messages is the user-facing text of one locale.
type Messages struct {
	SuccessTitle string
	ErrorTitle   string

	Encoded string
	Decoded string

	LoadFailed      string
	WriteOpenFailed string
	WriteFailed     string
	ReadOpenFailed  string
	ReadFailed      string
	Malformed       string
	SaveFailed      string
	Unexpected      string

	ModeTitle         string
	ModeImageToBinary string
	ModeBinaryToImage string
	ModePrompt        string
	SelectFile        string
	SelectFolder      string
}

var locales = map[string]Messages{
	"ru": {
		SuccessTitle:      "Успех",
		ErrorTitle:        "Ошибка",
		Encoded:           "Изображение успешно преобразовано в двоичный код и сохранено в файле.",
		Decoded:           "Двоичный код успешно преобразован в изображение и сохранен.",
		LoadFailed:        "Не удалось загрузить изображение.",
		WriteOpenFailed:   "Не удалось открыть файл для записи.",
		WriteFailed:       "Не удалось записать двоичный код в файл.",
		ReadOpenFailed:    "Не удалось открыть файл с двоичным кодом.",
		ReadFailed:        "Не удалось прочитать файл с двоичным кодом.",
		Malformed:         "Файл с двоичным кодом повреждён или имеет неверный размер.",
		SaveFailed:        "Не удалось сохранить изображение.",
		Unexpected:        "Не удалось выполнить преобразование.",
		ModeTitle:         "Режим:",
		ModeImageToBinary: "Изображение в двоичный код",
		ModeBinaryToImage: "Двоичный код в изображение",
		ModePrompt:        "Выберите режим (1 или 2, по умолчанию 1):",
		SelectFile:        "Выберите файл:",
		SelectFolder:      "Выберите папку:",
	},
	"en": {
		SuccessTitle:      "Success",
		ErrorTitle:        "Error",
		Encoded:           "The image was converted to binary and saved to the file.",
		Decoded:           "The binary data was converted to an image and saved.",
		LoadFailed:        "Failed to load the image.",
		WriteOpenFailed:   "Failed to open the file for writing.",
		WriteFailed:       "Failed to write the binary data.",
		ReadOpenFailed:    "Failed to open the binary file.",
		ReadFailed:        "Failed to read the binary file.",
		Malformed:         "The binary file is corrupted or has the wrong size.",
		SaveFailed:        "Failed to save the image.",
		Unexpected:        "The conversion failed.",
		ModeTitle:         "Mode:",
		ModeImageToBinary: "Image to binary",
		ModeBinaryToImage: "Binary to image",
		ModePrompt:        "Select a mode (1 or 2, Enter for 1):",
		SelectFile:        "Select a file:",
		SelectFolder:      "Select a folder:",
	},
}

// MessagesFor returns the texts of locale.
func MessagesFor(locale string) (Messages, error) {
	m, ok := locales[locale]
	if !ok {
		return Messages{}, fmt.Errorf("unsupported locale %q", locale)
	}
	return m, nil
}

// ForError picks the text describing err.
func (m Messages) ForError(err error) string {
	kind := convert.KindOf(err)
	if kind == nil {
		kind = err
	}
	switch {
	case errors.Is(kind, convert.ErrLoad):
		return m.LoadFailed
	case errors.Is(kind, convert.ErrWriteOpen):
		return m.WriteOpenFailed
	case errors.Is(kind, convert.ErrWrite):
		return m.WriteFailed
	case errors.Is(kind, convert.ErrReadOpen):
		return m.ReadOpenFailed
	case errors.Is(kind, convert.ErrMalformed):
		return m.Malformed
	case errors.Is(kind, convert.ErrRead):
		return m.ReadFailed
	case errors.Is(kind, convert.ErrSave):
		return m.SaveFailed
	default:
		return m.Unexpected
	}
}

// ForSuccess picks the text announcing a finished conversion.
func (m Messages) ForSuccess(mode convert.Mode) string {
	if mode == convert.BinaryToImage {
		return m.Decoded
	}
	return m.Encoded
}

// Notifier reports the outcome of a conversion to the user.
type Notifier interface {
	Success(mode convert.Mode, path string)
	Failure(err error)
}

// Console writes notifications as "<title>: <text>" lines.
type Console struct {
	Out     io.Writer
	Err     io.Writer
	Text    Messages
	Verbose bool // append the underlying error to failure texts
}

var _ Notifier = (*Console)(nil)

func (c *Console) Success(mode convert.Mode, path string) {
	fmt.Fprintf(c.Out, "%s: %s (%s)\n", c.Text.SuccessTitle, c.Text.ForSuccess(mode), path)
}

func (c *Console) Failure(err error) {
	if c.Verbose {
		fmt.Fprintf(c.Err, "%s: %s (%v)\n", c.Text.ErrorTitle, c.Text.ForError(err), err)
		return
	}
	fmt.Fprintf(c.Err, "%s: %s\n", c.Text.ErrorTitle, c.Text.ForError(err))
}
