package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/time-butler/timereport/pkg/timereport/models"
	"github.com/xuri/excelize/v2"
)

// Load reads the archive at path. A missing file yields an empty workbook;
// an unreadable one is handled according to policy. now stamps the name of
// a backup copy.
func Load(path string, policy CorruptPolicy, now time.Time) (*models.Workbook, error) {
	bookName := filepath.Base(path)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", path).Msg("Archive not found, starting a new workbook")
		return models.NewWorkbook(bookName), nil
	}

	wb, err := read(path)
	if err == nil {
		return wb, nil
	}

	serr := &StoreError{Path: path, Op: "load", Err: err}
	switch policy {
	case PolicyFail:
		return nil, serr
	case PolicyBackup:
		backup, berr := backupFile(path, now)
		if berr != nil {
			return nil, &StoreError{Path: path, Op: "backup", Err: berr}
		}
		log.Error().Err(err).Str("backup", backup).Msg("Archive unreadable, copied aside and starting empty")
	default:
		log.Error().Err(err).Str("path", path).Msg("Archive unreadable, starting empty")
	}
	return models.NewWorkbook(bookName), nil
}

func read(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := models.NewWorkbook(filepath.Base(path))
	sheetList := f.GetSheetList()
	log.Debug().Strs("sheets", sheetList).Msg("Found existing sheets")

	for _, name := range sheetList {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		wb.Put(sheet)
		log.Info().Str("sheet", name).Int("rows", sheet.Len()).Msg("Loaded existing sheet")
	}
	return wb, nil
}

func backupFile(path string, now time.Time) (string, error) {
	dst := fmt.Sprintf("%s.corrupt-%s", path, now.Format("20060102-150405"))
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	return dst, out.Close()
}
