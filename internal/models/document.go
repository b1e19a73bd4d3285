package models

type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeHWP FileType = "hwp"
)

func (f FileType) Valid() bool {
	return f == FileTypePDF || f == FileTypeHWP
}

type DocKind string

const (
	DocKindResume      DocKind = "resume"
	DocKindCoverLetter DocKind = "coverLetter"
)

func (d DocKind) Valid() bool {
	return d == DocKindResume || d == DocKindCoverLetter
}

type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageKorean || l == LanguageEnglish
}

type ProcessRequest struct {
	FileURL    string   `json:"fileUrl"`
	FileType   FileType `json:"fileType"`
	DocKind    DocKind  `json:"docKind"`
	Language   Language `json:"language"`
	TargetRole *string  `json:"targetRole,omitempty"`
}

// ProcessedDocument is the pipeline result. PDFURL is always nil: converted
// PDFs are discarded with the rest of the working directory.
type ProcessedDocument struct {
	ExtractedText string  `json:"extractedText"`
	PageCount     int     `json:"pageCount"`
	PDFURL        *string `json:"pdfUrl"`
}
