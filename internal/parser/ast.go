package parser

// Command represents a top-level action typed at the prompt or sent to the bot
type Command struct {
	Summon    *SummonCmd    `parser:"( @@"`
	Sacrifice *SacrificeCmd `parser:"| @@"`
	Damage    *DamageCmd    `parser:"| @@"`
	Heal      *HealCmd      `parser:"| @@"`
	Mark      *MarkCmd      `parser:"| @@"`
	Champion  *ChampionCmd  `parser:"| @@"`
	Fixture   *FixtureCmd   `parser:"| @@"`
	Combat    *CombatCmd    `parser:"| @@"`
	Turn      *TurnCmd      `parser:"| @@"`
	Victory   *VictoryCmd   `parser:"| @@"`
	Respite   *RespiteCmd   `parser:"| @@"`
	LevelUp   *LevelUpCmd   `parser:"| @@"`
	Formation *FormationCmd `parser:"| @@"`
	OOC       *OOCCmd       `parser:"| @@"`
	Ability   *AbilityCmd   `parser:"| @@"`
	Check     *CheckCmd     `parser:"| @@"`
	Status    *StatusCmd    `parser:"| @@"`
	List      *ListCmd      `parser:"| @@"`
	Show      *ShowCmd      `parser:"| @@"`
	Eval      *EvalCmd      `parser:"| @@"`
	Hint      *HintCmd      `parser:"| @@"`
	Help      *HelpCmd      `parser:"| @@ )"`
}

// SummonCmd summons one template's worth of minions
type SummonCmd struct {
	Keyword  string `parser:"@\"summon\""`
	Template string `parser:"@Ident"`
	Squad    string `parser:"( \"into\" @Ident )?"`
	Free     bool   `parser:"@\"free\"?"`
}

// SacrificeCmd removes minions for a summon discount, or one signature minion for essence
type SacrificeCmd struct {
	Keyword    string   `parser:"@\"sacrifice\""`
	ForEssence bool     `parser:"@( \"for\" \"essence\" )?"`
	Minions    []string `parser:"@Ident+"`
}

// DamageCmd damages a squad, the champion or the fixture
type DamageCmd struct {
	Keyword string `parser:"@\"damage\""`
	Target  string `parser:"@Ident"`
	Amount  int    `parser:"@Int"`
}

// HealCmd heals a squad or the champion
type HealCmd struct {
	Keyword string `parser:"@\"heal\""`
	Target  string `parser:"@Ident"`
	Amount  int    `parser:"@Int"`
}

// MarkCmd records that a minion acted or moved
type MarkCmd struct {
	Action string `parser:"@( \"act\" | \"move\" )"`
	Minion string `parser:"@Ident"`
}

// ChampionCmd drives the champion lifecycle
type ChampionCmd struct {
	Keyword string `parser:"@\"champion\""`
	Action  string `parser:"@( \"summon\" | \"recovery\" | \"action\" | \"temp\" )"`
	Amount  int    `parser:"@Int?"`
}

// FixtureCmd summons or dismisses the portfolio fixture
type FixtureCmd struct {
	Keyword string `parser:"@\"fixture\""`
	Action  string `parser:"@( \"summon\" | \"dismiss\" )"`
}

// CombatCmd opens or closes an encounter
type CombatCmd struct {
	Keyword   string `parser:"@\"combat\""`
	Action    string `parser:"@( \"start\" | \"end\" )"`
	Signature string `parser:"@Ident?"`
}

// TurnCmd starts the summoner's turn
type TurnCmd struct {
	Keyword   string `parser:"@\"turn\""`
	Signature string `parser:"@Ident?"`
}

type VictoryCmd struct {
	Keyword string `parser:"@\"victory\""`
}

type RespiteCmd struct {
	Keyword string `parser:"@\"respite\""`
}

type LevelUpCmd struct {
	Keyword string `parser:"@\"levelup\""`
}

// FormationCmd switches formation
type FormationCmd struct {
	Keyword string `parser:"@\"formation\""`
	Name    string `parser:"@Ident"`
}

// OOCCmd manages minions summoned outside combat
type OOCCmd struct {
	Keyword string `parser:"@\"ooc\""`
	Action  string `parser:"@( \"summon\" | \"dismiss\" | \"task\" )"`
	Target  string `parser:"@Ident"`
	Task    string `parser:"( \"for\"? @String )?"`
}

// AbilityCmd spends an out-of-combat ability
type AbilityCmd struct {
	Keyword string `parser:"@\"ability\""`
	Name    string `parser:"@Ident"`
}

// CheckCmd previews whether a summon would succeed
type CheckCmd struct {
	Keyword  string `parser:"@\"check\""`
	Template string `parser:"@Ident"`
}

type StatusCmd struct {
	Keyword string `parser:"@\"status\""`
}

// ListCmd lists the templates of the hero's portfolio
type ListCmd struct {
	Keyword string `parser:"@\"list\""`
}

// ShowCmd prints one template's stat block
type ShowCmd struct {
	Keyword  string `parser:"@\"show\""`
	Template string `parser:"@Ident"`
}

// EvalCmd evaluates a rule expression against the hero
type EvalCmd struct {
	Keyword    string `parser:"@\"eval\""`
	Expression string `parser:"@String"`
}

// HintCmd suggests what the summoner can do next
type HintCmd struct {
	Keyword string `parser:"@\"hint\""`
}

// HelpCmd provides command guidance
type HelpCmd struct {
	Keyword string `parser:"@\"help\""`
	Command string `parser:"@Ident?"`
}
