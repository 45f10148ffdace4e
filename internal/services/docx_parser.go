package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// A .docx file is a zip archive whose text lives in word/document.xml. No
// third-party dependency needed: scanning the XML token stream and keeping
// character data reproduces the visible text, with paragraph and break
// elements mapped to newlines.

type DOCXParserService interface {
	ExtractText(filePath string) (string, error)
}

type docxParserService struct{}

func NewDOCXParserService() DOCXParserService {
	return &docxParserService{}
}

func (p *docxParserService) ExtractText(filePath string) (string, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer reader.Close()

	var document *zip.File
	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			document = file
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("failed to parse DOCX: word/document.xml missing")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX document: %w", err)
	}
	defer rc.Close()

	text, err := decodeDocumentXML(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX document: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("docx: %w", ErrNoTextContent)
	}

	return text, nil
}

func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var textBuilder strings.Builder
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.CharData:
			textBuilder.Write(t)
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				textBuilder.WriteString("\n")
			case "br":
				textBuilder.WriteString("\n")
			case "tab":
				textBuilder.WriteString("\t")
			}
		}
	}

	return textBuilder.String(), nil
}
