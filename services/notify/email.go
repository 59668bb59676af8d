package notifysvc

import (
	"net/mail"

	"github.com/growthapp/garden/core"
)

type milestoneData struct {
	RecipientName string
	ChildName     string
	Title         string
	Message       string
}

type parentEmailNotifier struct {
	users  UserFinder
	mailer core.EmailService
	logger core.Logger
}

// NewParentEmailNotifier emails the parent of a child whenever the child reaches a milestone.
func NewParentEmailNotifier(users UserFinder, mailer core.EmailService, logger core.Logger) core.Notifier {
	return &parentEmailNotifier{users: users, mailer: mailer, logger: logger}
}

func (pn *parentEmailNotifier) Notify(n core.Notification) {
	if n.Kind != core.KindMilestone {
		return
	}
	child, err := pn.users.GetByID(n.UserID)
	if err != nil {
		pn.logger.Warn("milestone email: unknown user", err, map[string]interface{}{"user_id": n.UserID})
		return
	}
	if child.ParentID == "" {
		return
	}
	parent, err := pn.users.GetByID(child.ParentID)
	if err != nil {
		pn.logger.Warn("milestone email: unknown parent", err, child)
		return
	}
	if !parent.IsActive {
		return
	}

	pn.mailer.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: parent.Name, Address: parent.Email}},
		Subject:      child.Name + ": " + n.Title,
		TemplateName: "milestone",
		TemplateData: milestoneData{
			RecipientName: parent.Name,
			ChildName:     child.Name,
			Title:         n.Title,
			Message:       n.Message,
		},
	})
}
