package mixer

// Group is a tag shared by a set of channels. A channel carries one tag at a
// time; tagging it again moves it.
type Group int

// DefaultGroup is the tag every channel starts with.
const DefaultGroup Group = -1

// AddChannelsRange tags channels from through to (inclusive) and returns the
// number of channels tagged.
func (g Group) AddChannelsRange(from, to Channel) int {
	return mix.GroupChannels(int(from), int(to), int(g))
}

// AddChannel tags ch, removing it from its previous group.
func (g Group) AddChannel(ch Channel) bool {
	return mix.GroupChannel(int(ch), int(g)) == 1
}

// Count returns the number of channels in the group.
func (g Group) Count() int {
	return mix.GroupCount(int(g))
}

// Available returns the first channel in the group that is not playing.
func (g Group) Available() (Channel, bool) {
	return groupResult(mix.GroupAvailable(int(g)))
}

// Oldest returns the channel in the group that has been playing the longest.
func (g Group) Oldest() (Channel, bool) {
	return groupResult(mix.GroupOldest(int(g)))
}

// Newest returns the most recently started playing channel in the group.
func (g Group) Newest() (Channel, bool) {
	return groupResult(mix.GroupNewer(int(g)))
}

// FadeOut fades out every channel in the group over ms milliseconds and
// returns the number of channels set to fade out.
func (g Group) FadeOut(ms int) int {
	return mix.FadeOutGroup(int(g), ms)
}

// Halt stops playback on every channel in the group.
func (g Group) Halt() {
	mix.HaltGroup(int(g))
}

func groupResult(ret int) (Channel, bool) {
	if ret == -1 {
		return 0, false
	}
	return Channel(ret), true
}
