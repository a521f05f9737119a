package testutil

import "testing"

// WidgetConfigYAML is a small widget config with two contexts and canned replies
const WidgetConfigYAML = `title: Support
initial_context: jobs
contexts:
  - value: jobs
    label: Jobs
  - value: workflows
    label: Workflows
suggestions:
  - Why did my job fail?
  - Show running workflows
max_message_length: 40
initially_open: false
reply_delay: 10ms
banner_duration: 1s
initial_messages: []
replies:
  jobs:
    - "Job 42 failed on step build."
  workflows:
    - "Two workflows are running."
`

// ScenarioYAML drives the basic round trip plus an unread reply while closed
const ScenarioYAML = `name: round trip
config:
  initial_context: jobs
  contexts:
    - value: jobs
      label: Jobs
    - value: workflows
      label: Workflows
  initial_messages: []
steps:
  - action: open
  - action: submit
    text: "  hello  "
  - action: submit
    text: "dropped while waiting"
  - action: reply
    text: hi there
  - action: favorite
    index: 2
  - action: close
  - action: reply
    text: ping
  - action: context
    text: workflows
  - action: copy
    index: 1
  - action: toggle
`

// WriteWidgetConfig writes WidgetConfigYAML into dir and returns its path
func WriteWidgetConfig(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "widget.yaml", []byte(WidgetConfigYAML))
}

// WriteScenario writes ScenarioYAML into dir and returns its path
func WriteScenario(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "scenario.yaml", []byte(ScenarioYAML))
}
