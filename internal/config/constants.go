package config

import "time"

// Base application details
const AppName = "textring"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "textring.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultWrapWidth = 0 // wrap at the terminal width
const DefaultHistoryLimit = 100
const SystemClipboard = true
const DefaultTheme = "dark"
