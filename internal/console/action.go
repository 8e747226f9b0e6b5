package console

import "fmt"

// ActionKind tags what activating a card does.
type ActionKind string

const (
	ActionNone        ActionKind = "none"
	ActionNavigate    ActionKind = "navigate"
	ActionOpenInquiry ActionKind = "openInquiry"
)

// Action is a card's click behavior. Target is the destination of
// ActionNavigate and empty otherwise.
type Action struct {
	Kind   ActionKind
	Target string
}

// Navigate returns an action that moves to target.
func Navigate(target string) Action { return Action{Kind: ActionNavigate, Target: target} }

// OpenInquiry returns an action that opens the inquiry form.
func OpenInquiry() Action { return Action{Kind: ActionOpenInquiry} }

// NoAction returns an action that does nothing.
func NoAction() Action { return Action{Kind: ActionNone} }

// Dispatcher runs actions. Nil callbacks are skipped.
type Dispatcher struct {
	Navigate    func(target string)
	OpenInquiry func()
}

// Dispatch runs a. The zero Action does nothing.
func (d Dispatcher) Dispatch(a Action) error {
	switch a.Kind {
	case ActionNone, "":
		return nil
	case ActionNavigate:
		if a.Target == "" {
			return fmt.Errorf("console: navigate action without target")
		}
		if d.Navigate != nil {
			d.Navigate(a.Target)
		}
		return nil
	case ActionOpenInquiry:
		if d.OpenInquiry != nil {
			d.OpenInquiry()
		}
		return nil
	default:
		return fmt.Errorf("console: unknown action kind %q", a.Kind)
	}
}

// Capability is one card of the services grid.
type Capability struct {
	Title       string
	Description string
	Action      Action
}

// Capabilities is the services grid of the landing page.
var Capabilities = []Capability{
	{
		Title:       "Cloud Infrastructure",
		Description: "AWS, Azure, GCP 플랫폼 전반에 걸친 멀티 클라우드 아키텍처 설계 및 구현.",
		Action:      Navigate("/services/cloud-infrastructure"),
	},
	{
		Title:       "RAG Systems",
		Description: "벡터 데이터베이스와 LLM 통합을 통한 엔터프라이즈 AI 지식 베이스 구축.",
		Action:      NoAction(),
	},
	{
		Title:       "DevOps Pipeline",
		Description: "IaC(Infrastructure as Code) 기반의 자동화된 CI/CD 워크플로우.",
		Action:      NoAction(),
	},
	{
		Title:       "ML Operations",
		Description: "대규모 모델 배포 및 라이프사이클 관리 시스템.",
		Action:      NoAction(),
	},
	{
		Title:       "Custom Solutions",
		Description: "비즈니스 요구사항에 최적화된 맞춤형 아키텍처를 설계합니다.",
		Action:      OpenInquiry(),
	},
}
