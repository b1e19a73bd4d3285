package services

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractedText holds the text layer of each page. When the text comes from
// direct extraction PageCount == len(Pages).
type ExtractedText struct {
	Pages     []string
	PageCount int
}

type PDFParserService interface {
	ExtractPages(filePath string) (*ExtractedText, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractPages reads the text layer page by page. A page without a text
// layer, or one that fails to decode, contributes an empty string.
func (p *pdfParserService) ExtractPages(filePath string) (*ExtractedText, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages[pageIndex-1] = text
	}

	return &ExtractedText{
		Pages:     pages,
		PageCount: totalPage,
	}, nil
}
