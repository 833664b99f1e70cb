package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Goal    func(GoalArgs) (Result, error)
	Date    func(DateArgs) (Result, error)
	Zoom    func(ZoomArgs) (Result, error)
	Reflect func(ReflectArgs) (Result, error)
	Plan    func(PlanArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goal handler not configured"}
		}
		return handlers.Goal(*cmd.Goal)
	case TypeDate:
		if handlers.Date == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "date handler not configured"}
		}
		return handlers.Date(*cmd.Date)
	case TypeZoom:
		if handlers.Zoom == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "zoom handler not configured"}
		}
		return handlers.Zoom(*cmd.Zoom)
	case TypeReflect:
		if handlers.Reflect == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reflect handler not configured"}
		}
		return handlers.Reflect(*cmd.Reflect)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "plan handler not configured"}
		}
		return handlers.Plan(*cmd.Plan)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
