package actions

// Answer is the operator's reply. The zero value is Unanswered, which every
// caller treats as a refusal.
type Answer int

const (
	Unanswered Answer = iota
	Yes
	No
	Cancel
)

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Prompter asks the operator a yes/no question. With allowCancel the
// operator may also back out of the whole action.
type Prompter interface {
	Confirm(message string, allowCancel bool) Answer
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(message string, allowCancel bool) Answer

func (f PrompterFunc) Confirm(message string, allowCancel bool) Answer {
	return f(message, allowCancel)
}

// AssumeYes answers every question with Yes.
var AssumeYes = PrompterFunc(func(string, bool) Answer { return Yes })
