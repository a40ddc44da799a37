package methods

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mholt/archiver/v3"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Unpack 解包上传的图标压缩包到指定目录，支持 zip 和 rar
func Unpack(src string, dest string) error {
	ext := strings.ToLower(filepath.Ext(src))
	switch ext {
	case ".zip", ".rar":
		if err := os.MkdirAll(dest, os.ModePerm); err != nil {
			return err
		}
		if err := archiver.Unarchive(src, dest); err != nil {
			return err
		}
		return RepairNames(dest)
	default:
		return errors.New("Unsupported file format")
	}
}

// RepairNames 修复压缩包内被 GBK 编码弄乱的文件名
// Windows 下打包的 zip 常见此问题
func RepairNames(root string) error {
	var renames [][2]string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		if utf8.ValidString(name) {
			return nil
		}
		fixed, convErr := gbkToUtf8(name)
		if convErr != nil || fixed == name {
			return nil
		}
		renames = append(renames, [2]string{path, filepath.Join(filepath.Dir(path), fixed)})
		return nil
	})
	if err != nil {
		return err
	}
	// 深度优先重命名，先处理长路径避免父目录改名后子路径失效
	for i := len(renames) - 1; i >= 0; i-- {
		if err := os.Rename(renames[i][0], renames[i][1]); err != nil {
			return err
		}
	}
	return nil
}

func gbkToUtf8(s string) (string, error) {
	reader := transform.NewReader(bytes.NewReader([]byte(s)), simplifiedchinese.GB18030.NewDecoder())
	d, e := io.ReadAll(reader)
	if e != nil {
		return "", e
	}
	return string(d), nil
}

// ZipFolderTo 把整个目录压缩到指定 zip 文件
func ZipFolderTo(folderPath string, outpath string) error {
	zipFile, err := os.Create(outpath)
	if err != nil {
		return err
	}
	defer zipFile.Close()
	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()
	return filepath.Walk(folderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		// Skip the zip file itself
		if strings.HasSuffix(path, ".zip") {
			return nil
		}
		// Skip directories since they are implicitly added by including their files
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(folderPath, path)
		if err != nil {
			return err
		}
		zipFileHeader, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(zipFileHeader, file)
		if err != nil {
			return err
		}
		return nil
	})
}
