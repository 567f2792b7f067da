package main

import "image/color"

// -- notifications

type NoticeType int

const (
	NoticeInfo NoticeType = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
	NoticeSpecial
)

func (t NoticeType) Color() color.RGBA {
	switch t {
	case NoticeSuccess:
		return color.RGBA{80, 220, 100, 255}
	case NoticeWarning:
		return color.RGBA{240, 200, 60, 255}
	case NoticeError:
		return color.RGBA{230, 70, 70, 255}
	case NoticeSpecial:
		return color.RGBA{180, 120, 255, 255}
	}
	return color.RGBA{220, 220, 220, 255}
}

const (
	noticeLifetime = 3.0 // seconds a notification stays up
	noticeFadeTime = 1.0 // final seconds spent fading out
	maxNotices     = 5
)

type Notice struct {
	Text      string
	Type      NoticeType
	remaining float64
}

// Alpha is the notice's current opacity in [0, 1], ramping down over the
// fade window.
func (n *Notice) Alpha() float64 {
	if n.remaining >= noticeFadeTime {
		return 1
	}
	if n.remaining <= 0 {
		return 0
	}
	return n.remaining / noticeFadeTime
}

// NotificationQueue shows the most recent messages, newest first, capped at
// maxNotices. Pushing onto a full queue drops the oldest entry.
type NotificationQueue struct {
	notices []*Notice
}

func (q *NotificationQueue) Push(text string, t NoticeType) {
	n := &Notice{Text: text, Type: t, remaining: noticeLifetime}
	q.notices = append([]*Notice{n}, q.notices...)
	if len(q.notices) > maxNotices {
		q.notices = q.notices[:maxNotices]
	}
}

// PushEvent maps a gameplay event onto a typed notification. Events with no
// message (mode transitions) are skipped; the mode screens announce those.
func (q *NotificationQueue) PushEvent(ev Event) {
	if ev.Message == "" {
		return
	}
	switch ev.Kind {
	case EventKeyPickup, EventCheckpoint:
		q.Push(ev.Message, NoticeSuccess)
	case EventAllKeys, EventExitUnlocked:
		q.Push(ev.Message, NoticeSpecial)
	case EventExtraLife:
		q.Push(ev.Message, NoticeSuccess)
	case EventLivesFull:
		q.Push(ev.Message, NoticeInfo)
	case EventTrap, EventExitBlocked:
		q.Push(ev.Message, NoticeWarning)
	case EventLifeLost:
		q.Push(ev.Message, NoticeError)
	default:
		q.Push(ev.Message, NoticeInfo)
	}
}

// Advance ages every notice by dt seconds and drops the expired ones.
func (q *NotificationQueue) Advance(dt float64) {
	live := q.notices[:0]
	for _, n := range q.notices {
		n.remaining -= dt
		if n.remaining > 0 {
			live = append(live, n)
		}
	}
	q.notices = live
}

// Visible returns the live notices, newest first.
func (q *NotificationQueue) Visible() []*Notice { return q.notices }
