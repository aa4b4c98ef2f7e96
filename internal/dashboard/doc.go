// Package dashboard turns the loaded campaign rows and their MetricsSummary
// into the view model drawn by every renderer: eight KPI tiles, three
// charts, the ROAS leaderboard and four insight statements.
//
// Builders are pure functions of their inputs. Display formatting goes
// through an explicit Formatter value so nothing here depends on
// process-wide state.
package dashboard
