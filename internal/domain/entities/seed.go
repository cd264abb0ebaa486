package entities

// StarterArticle is an article stub seeded into an empty store. Seed
// revisions are dated at the Unix epoch so any real cutoff can see them.
type StarterArticle struct {
	Slug        string
	Title       string
	Description string
	Body        string
}

// StarterArticles is the fixed set of articles created on first use, in
// slug order. Descriptions tell automated readers what belongs in each
// article; bodies are the empty section templates revisions grow from.
var StarterArticles = []StarterArticle{
	{
		Slug:        "characters",
		Title:       "Characters",
		Description: "Tracks all significant characters encountered throughout the campaign, including player characters, NPCs, and important faction members. Each entry includes essential details such as name, race, class/occupation, current location, relationship to the party, and notable characteristics. Characters are organized by category (PC, NPC, faction) and cross-reference related locations, quests, and relationships.",
		Body: `# Characters

## Player Characters
<!-- Format: Name (Race, Class) - Brief description -->

## Non-Player Characters (NPCs)
<!-- Format: Name (Race, Occupation) - Location - Relationship to party - Brief description -->

### Allies

### Neutral

### Antagonists

## Factions and Organizations
<!-- Format: Name - Purpose/Goals - Key Members - Relationship to party -->
`,
	},
	{
		Slug:        "items-resources",
		Title:       "Items & Resources",
		Description: "Catalogs all significant items, artifacts, and resources acquired or encountered throughout the campaign: magical items, quest-related objects, valuable resources, and other important possessions. Keeps item properties and availability consistent so important objects are not forgotten or their powers inconsistently portrayed.",
		Body: `# Items & Resources

## Magical Artifacts
<!-- Format: Item name - Properties/powers - Current location/owner - Origin/history -->

## Quest Items
<!-- Format: Item name - Related quest - Current status - Significance -->

## Valuable Resources
<!-- Format: Resource name - Properties - Source locations - Current quantity -->

## Party Inventory
<!-- Format: Item name - Properties - Current holder - Acquisition details -->

## Currency & Wealth
<!-- Format: Character/party - Current funds - Notable expenses/income -->
`,
	},
	{
		Slug:        "knowledge-lore",
		Title:       "Knowledge & Lore",
		Description: "Preserves all significant knowledge, secrets, legends, and historical information discovered throughout the campaign: discovered lore, prophecies, ancient histories, and other information that enriches the world and informs future adventures. Entries are organized by topic and source.",
		Body: `# Knowledge & Lore

## Discovered Secrets
<!-- Format: Secret description - Source/how discovered - Significance - Related elements -->

## Legends & Prophecies
<!-- Format: Legend/prophecy name - Content - Source - Current relevance -->

## Historical Events
<!-- Format: Event name - Time period - Description - Current significance -->

## Religious & Mystical Knowledge
<!-- Format: Topic - Details - Source - Significance -->

## Maps & Navigational Information
<!-- Format: Region mapped - Notable features - Current accuracy -->
`,
	},
	{
		Slug:        "locations",
		Title:       "Locations",
		Description: "Catalogs all significant locations encountered or mentioned throughout the campaign. Each entry includes the location name, geographic position, notable features, important NPCs, available services, and relevant history. Locations are organized by region for quick reference when players return to previously visited places.",
		Body: `# Locations

## Major Settlements
<!-- Format: Name - Region - Notable features - Important NPCs - Available services -->

## Points of Interest
<!-- Format: Name - Region - Description - Significance to campaign -->

## Dungeons & Adventure Sites
<!-- Format: Name - Region - Status (explored/unexplored) - Notable features/encounters -->

## Regions & Territories
<!-- Format: Name - Governing faction - Geography - Notable settlements -->
`,
	},
	{
		Slug:        "player-decisions",
		Title:       "Player Decisions & Consequences",
		Description: "Records significant choices made by players and their resulting consequences: branching narrative paths, moral dilemmas, and how player actions have shaped the world. Ensures player agency is respected and that decisions have meaningful, consistent impacts. Entries are organized chronologically.",
		Body: `# Player Decisions & Consequences

## Major Decisions
<!-- Format: Decision description - Session/date - Character(s) involved - Immediate consequences -->

## Long-term Consequences
<!-- Format: Original decision - Resulting consequences - Current status -->

## Altered Relationships
<!-- Format: Character/faction - Original relationship - Current relationship - Cause of change -->

## World State Changes
<!-- Format: Change description - Cause - Areas affected -->
`,
	},
	{
		Slug:        "plot-elements",
		Title:       "Plot Elements",
		Description: "Tracks all significant plot elements, story arcs, and narrative threads throughout the campaign: main quests, side quests, and overarching storylines with their current status and progress. Keeps story threads from being forgotten or contradicted across sessions.",
		Body: `# Plot Elements

## Main Quest Line
<!-- Format: Quest name - Current status - Key objectives - Related NPCs/locations -->

## Active Side Quests
<!-- Format: Quest name - Source/giver - Objectives - Current progress -->

## Completed Quests
<!-- Format: Quest name - Outcome - Consequences - Date completed -->

## Future Hooks & Foreshadowing
<!-- Format: Hook description - Potential development - Related elements -->

## Campaign Timeline
<!-- Format: Date/Session - Major event - Significance -->
`,
	},
	{
		Slug:        "world-state",
		Title:       "World State",
		Description: "Tracks the current political, social, and environmental conditions of the campaign world: ruling powers, ongoing conflicts, seasonal events, and other dynamic elements that change over time. Organized by region and sphere of influence so the world responds consistently to the passage of time and player actions.",
		Body: `# World State

## Political Landscape
<!-- Format: Region - Ruling power - Current stability - Notable tensions -->

## Active Conflicts
<!-- Format: Conflict name - Involved parties - Current status - Areas affected -->

## Seasonal & Time-Dependent Events
<!-- Format: Event name - Timing - Significance - Affected regions -->

## Economic Conditions
<!-- Format: Region - Resource availability - Trade status - Price fluctuations -->
`,
	},
}
