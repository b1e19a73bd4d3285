package services

import (
	"fmt"
	"strings"

	"aiready/resume-ai/internal/models"
)

type TaskKind string

const (
	TaskEvaluate  TaskKind = "evaluate"
	TaskSummarize TaskKind = "summarize"
	TaskProofread TaskKind = "proofread"
)

// PromptEnvelope carries everything one task prompt embeds. Built per request.
type PromptEnvelope struct {
	Task       TaskKind
	Language   models.Language
	DocKind    models.DocKind
	TargetRole string
	Text       string
}

const unspecifiedRole = "미지정"

const antiFabrication = "허구의 경험, 회사, 수상 이력, 날짜를 새로 만들지 말고 원문에 있는 사실만 사용합니다."

const payloadOnly = "지정된 JSON 형식의 데이터만 반환하고, 설명 문장이나 마크다운 코드 블록은 포함하지 않습니다."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build dispatches on the envelope's task kind.
func (pb *PromptBuilder) Build(env PromptEnvelope) string {
	switch env.Task {
	case TaskSummarize:
		return pb.BuildSummaryPrompt(env)
	case TaskProofread:
		return pb.BuildProofreadPrompt(env)
	default:
		return pb.BuildEvaluationPrompt(env)
	}
}

// BuildEvaluationPrompt creates the rubric evaluation prompt
func (pb *PromptBuilder) BuildEvaluationPrompt(env PromptEnvelope) string {
	return fmt.Sprintf(`주어진 문서 내용을 기반으로 평가합니다.
%s
점수(overallScore, rubricScores의 readability, impact, structure, specificity, roleFit)는 0-100 사이 정수로 제공합니다.
강점(strengths), 약점(weaknesses), 구체적인 수정 제안(actionableEdits), 위험 신호(redFlags), 총평(summary)을 작성하고,
원문 사실만 재구성한 개선본(improvedVersion)은 한국어로 작성합니다.
%s

문서 유형: %s
언어: %s
목표 직무: %s

본문:
%s`,
		antiFabrication, payloadOnly, env.DocKind, env.Language, roleOrDefault(env.TargetRole), env.Text)
}

// BuildSummaryPrompt creates the summary prompt
func (pb *PromptBuilder) BuildSummaryPrompt(env PromptEnvelope) string {
	return fmt.Sprintf(`다음 이력서 내용을 간결하게 요약해 주세요.
불릿 5개 이내(bulletSummary), 한줄 요약(oneLiner), 핵심 키워드 8개 이내(keywords)로 반환합니다.
%s
%s

언어: %s

본문:
%s`,
		antiFabrication, payloadOnly, env.Language, env.Text)
}

// BuildProofreadPrompt creates the proofreading prompt
func (pb *PromptBuilder) BuildProofreadPrompt(env PromptEnvelope) string {
	return fmt.Sprintf(`주어진 자기소개서 내용을 사실을 추가하지 않고 문법적으로 교정하고(correctedText), 개선 의견을 제공합니다(comments).
각 개선 의견은 줄 또는 섹션 기준(lineOrSection)으로 작성해 주세요.
%s
%s

목표 직무: %s
언어: %s

본문:
%s`,
		antiFabrication, payloadOnly, roleOrDefault(env.TargetRole), env.Language, env.Text)
}

// WithJSONOnlyDirective appends the schema and a JSON-only instruction for
// backends that receive no schema out of band.
func (pb *PromptBuilder) WithJSONOnlyDirective(prompt string, contract *SchemaContract) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n반드시 아래 JSON Schema를 만족하는 JSON 객체 하나만 응답하세요. 다른 텍스트는 출력하지 마세요.\n")
	b.WriteString("JSON Schema:\n")
	b.WriteString(contract.JSON())
	return b.String()
}

func roleOrDefault(role string) string {
	if role = strings.TrimSpace(role); role != "" {
		return role
	}
	return unspecifiedRole
}
