package repository

import (
	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository/model"
)

func toModelUser(u *domain.User) *model.User {
	return &model.User{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		IsOnline:       u.IsOnline,
		LastSeen:       u.LastSeen,
		IsAdmin:        u.IsAdmin,
		IsBlocked:      u.IsBlocked,
		CreatedAt:      u.CreatedAt,
	}
}

func toDomainUser(u *model.User) *domain.User {
	return &domain.User{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		ProfilePicture: u.ProfilePicture,
		IsOnline:       u.IsOnline,
		LastSeen:       u.LastSeen,
		IsAdmin:        u.IsAdmin,
		IsBlocked:      u.IsBlocked,
		CreatedAt:      u.CreatedAt,
	}
}

func toDomainUsers(users []model.User) []*domain.User {
	result := make([]*domain.User, 0, len(users))
	for i := range users {
		result = append(result, toDomainUser(&users[i]))
	}
	return result
}

func toModelMessage(m *domain.Message) *model.Message {
	return &model.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Timestamp:  m.Timestamp,
		IsRead:     m.IsRead,
	}
}

func toDomainMessage(m *model.Message) *domain.Message {
	return &domain.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Timestamp:  m.Timestamp,
		IsRead:     m.IsRead,
	}
}

func toModelFriendRequest(r *domain.FriendRequest) *model.FriendRequest {
	return &model.FriendRequest{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func toDomainFriendRequest(r *model.FriendRequest) *domain.FriendRequest {
	req := &domain.FriendRequest{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Message:    r.Message,
		Status:     domain.FriendRequestStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if r.From != nil {
		req.From = toDomainUser(r.From)
	}
	return req
}

func toDomainFriendship(f *model.Friendship) *domain.Friendship {
	return &domain.Friendship{
		ID:        f.ID,
		UserID1:   f.UserID1,
		UserID2:   f.UserID2,
		CreatedAt: f.CreatedAt,
	}
}

func toModelGroup(g *domain.Group) *model.Group {
	return &model.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Avatar:      g.Avatar,
		CreatedBy:   g.CreatedBy,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
	}
}

func toDomainGroup(g *model.Group) *domain.Group {
	group := &domain.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Avatar:      g.Avatar,
		CreatedBy:   g.CreatedBy,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
	}
	for i := range g.Members {
		group.Members = append(group.Members, toDomainGroupMember(&g.Members[i]))
	}
	return group
}

func toDomainGroupMember(m *model.GroupMember) *domain.GroupMember {
	member := &domain.GroupMember{
		ID:       m.ID,
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		Role:     domain.GroupRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		member.User = toDomainUser(m.User)
	}
	return member
}

func toModelGroupMessage(m *domain.GroupMessage) *model.GroupMessage {
	return &model.GroupMessage{
		ID:        m.ID,
		GroupID:   m.GroupID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
}

func toDomainGroupMessage(m *model.GroupMessage) *domain.GroupMessage {
	msg := &domain.GroupMessage{
		ID:        m.ID,
		GroupID:   m.GroupID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
	if m.Sender != nil {
		msg.Sender = toDomainUser(m.Sender)
	}
	return msg
}

func toModelCall(c *domain.Call) *model.Call {
	return &model.Call{
		ID:         c.ID,
		CallerID:   c.CallerID,
		ReceiverID: c.ReceiverID,
		Type:       string(c.Type),
		Status:     string(c.Status),
		Duration:   c.Duration,
		StartedAt:  c.StartedAt,
		EndedAt:    c.EndedAt,
	}
}

func toDomainCall(c *model.Call) *domain.Call {
	return &domain.Call{
		ID:         c.ID,
		CallerID:   c.CallerID,
		ReceiverID: c.ReceiverID,
		Type:       domain.CallType(c.Type),
		Status:     domain.CallStatus(c.Status),
		Duration:   c.Duration,
		StartedAt:  c.StartedAt,
		EndedAt:    c.EndedAt,
	}
}

func toModelStatus(s *domain.Status) *model.Status {
	return &model.Status{
		ID:        s.ID,
		UserID:    s.UserID,
		Type:      string(s.Type),
		Content:   s.Content,
		Caption:   s.Caption,
		Timestamp: s.Timestamp,
		ExpiresAt: s.ExpiresAt,
		IsActive:  s.IsActive,
	}
}

func toDomainStatus(s *model.Status) *domain.Status {
	status := &domain.Status{
		ID:        s.ID,
		UserID:    s.UserID,
		Type:      domain.StatusType(s.Type),
		Content:   s.Content,
		Caption:   s.Caption,
		Timestamp: s.Timestamp,
		ExpiresAt: s.ExpiresAt,
		IsActive:  s.IsActive,
	}
	if s.Owner != nil {
		status.Owner = toDomainUser(s.Owner)
	}
	return status
}

func toDomainStatusView(v *model.StatusView) *domain.StatusView {
	view := &domain.StatusView{
		ID:       v.ID,
		StatusID: v.StatusID,
		ViewerID: v.ViewerID,
		ViewedAt: v.ViewedAt,
	}
	if v.Viewer != nil {
		view.Viewer = toDomainUser(v.Viewer)
	}
	return view
}

func toModelNotification(n *domain.Notification) *model.Notification {
	return &model.Notification{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		Type:         string(n.Type),
		TargetUserID: n.TargetUserID,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
}

func toDomainNotification(n *model.Notification) *domain.Notification {
	return &domain.Notification{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		Type:         domain.NotificationType(n.Type),
		TargetUserID: n.TargetUserID,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
}
