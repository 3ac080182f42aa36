package todo

// Badge - отображение статуса для клиента (лейбл, иконка, css-класс)
type Badge struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
}

var badges = map[Status]Badge{
	StatusPending:    {Label: "Pending", Icon: "circle", Class: "badge-pending"},
	StatusInProgress: {Label: "In Progress", Icon: "clock", Class: "badge-in-progress"},
	StatusCompleted:  {Label: "Completed", Icon: "check-circle", Class: "badge-completed"},
}

func (s Status) Badge() Badge {
	if b, ok := badges[s]; ok {
		return b
	}
	return badges[StatusPending]
}
