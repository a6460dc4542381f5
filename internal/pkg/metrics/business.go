package metrics

func (m *Metrics) IncrementTopicCreated() {
	m.safeExecute("IncrementTopicCreated", func() {
		m.TopicsCreatedTotal.Inc()
		// 首帖
		m.PostsCreatedTotal.Inc()
	})
}

func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostsCreatedTotal.Inc()
	})
}

func (m *Metrics) IncrementPostEdited() {
	m.safeExecute("IncrementPostEdited", func() {
		m.PostsEditedTotal.Inc()
	})
}

func (m *Metrics) IncrementTopicView() {
	m.safeExecute("IncrementTopicView", func() {
		m.TopicViewsTotal.Inc()
	})
}

func (m *Metrics) IncrementEventPublishError() {
	m.safeExecute("IncrementEventPublishError", func() {
		m.EventPublishErrors.Inc()
	})
}
