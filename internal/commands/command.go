package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeGoal    Type = "goal"
	TypeDate    Type = "date"
	TypeZoom    Type = "zoom"
	TypeReflect Type = "reflect"
	TypePlan    Type = "plan"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type GoalArgs struct {
	Title string
}

type DateArgs struct {
	// When is "today", "tomorrow", or a "YYYY-MM-DD" literal.
	When string
}

type ZoomArgs struct {
	Direction string
}

type ReflectArgs struct {
	Content string
}

type PlanArgs struct {
	Mood string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Goal    *GoalArgs
	Date    *DateArgs
	Zoom    *ZoomArgs
	Reflect *ReflectArgs
	Plan    *PlanArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeDate:
		return parseDate(input, args)
	case TypeZoom:
		return parseZoom(input, args)
	case TypeReflect:
		return parseReflect(input, args)
	case TypePlan:
		return parsePlan(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a title"}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Title: title}}, nil
}

func parseDate(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "date requires a single argument"}
	}
	when := strings.ToLower(args[0])
	if when != "today" && when != "tomorrow" && !looksLikeDate(args[0]) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unrecognized date: %s", args[0])}
	}
	if looksLikeDate(args[0]) {
		when = args[0]
	}
	return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{When: when}}, nil
}

func parseZoom(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "zoom requires in or out"}
	}
	direction := strings.ToLower(args[0])
	if direction != "in" && direction != "out" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unrecognized zoom direction: %s", args[0])}
	}
	return Command{Type: TypeZoom, Raw: raw, Zoom: &ZoomArgs{Direction: direction}}, nil
}

func parseReflect(raw string, args []string) (Command, error) {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reflect requires content"}
	}
	return Command{Type: TypeReflect, Raw: raw, Reflect: &ReflectArgs{Content: content}}, nil
}

func parsePlan(raw string, args []string) (Command, error) {
	mood := strings.TrimSpace(strings.Join(args, " "))
	if mood == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "plan requires a mood"}
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &PlanArgs{Mood: mood}}, nil
}

func looksLikeDate(value string) bool {
	parts := strings.Split(value, "-")
	return len(parts) == 3 && len(parts[0]) == 4 && len(parts[1]) == 2 && len(parts[2]) == 2
}
