// meta/meta.go
package meta

// NUM_PLAYERS is the number of seats at the table.
const NUM_PLAYERS = 4

// WINNING_SCORE is the number of points that ends the game.
const WINNING_SCORE = 10

// BONUS_POINTS is the value of the longest road and largest army cards.
const BONUS_POINTS = 2

// LONGEST_ROAD_MIN is the road length required before the bonus can be held.
const LONGEST_ROAD_MIN = 5

// LARGEST_ARMY_MIN is the number of knights required before the bonus can be held.
const LARGEST_ARMY_MIN = 3

// HAND_LIMIT is the hand size above which a rolled seven forces a discard.
const HAND_LIMIT = 7

// MAX_TURNS caps a simulated game that nobody manages to win.
const MAX_TURNS = 400

// DEPTH defines the default lookahead, in full rounds, of the search agents.
const DEPTH = 1
