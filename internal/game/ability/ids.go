package ability

import "fmt"

// ID identifies an ability. IDs are stable: they key the registry and are what
// Pokemon carry in their ability slots, so abilities compare, copy and swap by value.
type ID int

// None is the empty ability slot.
const None ID = 0

const (
	Stench ID = iota + 1
	Drizzle
	SpeedBoost
	BattleArmor
	Sturdy
	Damp
	Limber
	SandVeil
	Static
	VoltAbsorb
	WaterAbsorb
	Oblivious
	CloudNine
	CompoundEyes
	Insomnia
	ColorChange
	Immunity
	FlashFire
	ShieldDust
	OwnTempo
	SuctionCups
	Intimidate
	ShadowTag
	RoughSkin
	WonderGuard
	Levitate
	EffectSpore
	Synchronize
	ClearBody
	NaturalCure
	LightningRod
	SereneGrace
	SwiftSwim
	Chlorophyll
	Illuminate
	Trace
	HugePower
	PoisonPoint
	InnerFocus
	MagmaArmor
	WaterVeil
	MagnetPull
	Soundproof
	RainDish
	SandStream
	Pressure
	ThickFat
	EarlyBird
	FlameBody
	RunAway
	KeenEye
	HyperCutter
	Pickup
	Truant
	Hustle
	CuteCharm
	Plus
	Minus
	Forecast
	StickyHold
	ShedSkin
	Guts
	MarvelScale
	LiquidOoze
	Overgrow
	Blaze
	Torrent
	Swarm
	RockHead
	Drought
	ArenaTrap
	VitalSpirit
	WhiteSmoke
	PurePower
	ShellArmor
	AirLock
	TangledFeet
	MotorDrive
	Rivalry
	Steadfast
	SnowCloak
	Gluttony
	AngerPoint
	Unburden
	Heatproof
	Simple
	DrySkin
	Download
	IronFist
	PoisonHeal
	Adaptability
	SkillLink
	Hydration
	SolarPower
	QuickFeet
	Normalize
	Sniper
	MagicGuard
	NoGuard
	Stall
	Technician
	LeafGuard
	Klutz
	MoldBreaker
	SuperLuck
	Aftermath
	Anticipation
	Forewarn
	Unaware
	TintedLens
	Filter
	SlowStart
	Scrappy
	StormDrain
	IceBody
	SolidRock
	SnowWarning
	HoneyGather
	Frisk
	Reckless
	Multitype
	FlowerGift
	BadDreams
	Pickpocket
	SheerForce
	Contrary
	Unnerve
	Defiant
	Defeatist
	CursedBody
	Healer
	FriendGuard
	WeakArmor
	HeavyMetal
	LightMetal
	Multiscale
	ToxicBoost
	FlareBoost
	Harvest
	Telepathy
	Moody
	Overcoat
	PoisonTouch
	Regenerator
	BigPecks
	SandRush
	WonderSkin
	Analytic
	Illusion
	Imposter
	Infiltrator
	Mummy
	Moxie
	Justified
	Rattled
	MagicBounce
	SapSipper
	Prankster
	SandForce
	IronBarbs
	ZenMode
	VictoryStar
	Turboblaze
	Teravolt
	AromaVeil
	FlowerVeil
	CheekPouch
	Protean
	FurCoat
	Magician
	Bulletproof
	Competitive
	StrongJaw
	Refrigerate
	SweetVeil
	StanceChange
	GaleWings
	MegaLauncher
	GrassPelt
	Symbiosis
	ToughClaws
	Pixilate
	Gooey
	Aerilate
	ParentalBond
	DarkAura
	FairyAura
	AuraBreak
	PrimordialSea
	DesolateLand
	DeltaStream
	Stamina
	WimpOut
	EmergencyExit
	WaterCompaction
	Merciless
	ShieldsDown
	Stakeout
	WaterBubble
	Steelworker
	Berserk
	SlushRush
	LongReach
	LiquidVoice
	Triage
	Galvanize
	SurgeSurfer
	Schooling
	Disguise
	BattleBond
	PowerConstruct
	Corrosion
	Comatose
	QueenlyMajesty
	InnardsOut
	Dancer
	Battery
	Fluffy
	Dazzling
	SoulHeart
	TanglingHair
	Receiver
	PowerOfAlchemy
	BeastBoost
	RksSystem
	ElectricSurge
	PsychicSurge
	MistySurge
	GrassySurge
	FullMetalBody
	ShadowShield
	PrismArmor
	Neuroforce
	IntrepidSword
	DauntlessShield
	Libero
	BallFetch
	CottonDown
	PropellerTail
	MirrorArmor
	GulpMissile
	Stalwart
	SteamEngine
	PunkRock
	SandSpit
	IceScales
	Ripen
	IceFace
	PowerSpot
	Mimicry
	ScreenCleaner
	SteelySpirit
	PerishBody
	WanderingSpirit
	GorillaTactics
	NeutralizingGas
	PastelVeil
	HungerSwitch
	QuickDraw
	UnseenFist
	CuriousMedicine
	Transistor
	DragonsMaw
	ChillingNeigh
	GrimNeigh
	AsOneGlastrier
	AsOneSpectrier
	LingeringAroma
	SeedSower
	ThermalExchange
	AngerShell
	PurifyingSalt
	WellBakedBody
	WindRider
	GuardDog
	RockyPayload
	WindPower
	ZeroToHero
	Commander
	Electromorphosis
	Protosynthesis
	QuarkDrive
	GoodAsGold
	VesselOfRuin
	SwordOfRuin
	TabletsOfRuin
	BeadsOfRuin
	OrichalcumPulse
	HadronEngine
	Opportunist
	CudChew
	Sharpness
	SupremeOverlord
	Costar
	ToxicDebris
	ArmorTail
	EarthEater
	MyceliumMight
	MindsEye
	SupersweetSyrup
	Hospitality
	ToxicChain
	EmbodyAspectTeal
	EmbodyAspectWellspring
	EmbodyAspectHearthflame
	EmbodyAspectCornerstone
	TeraShift
	TeraShell
	TeraformZero
	PoisonPuppeteer
)

// standardCount is the number of ids reserved by the standard table. Data-defined
// abilities are numbered from CustomBase upward.
const standardCount = 310

// CustomBase is the first id available to data-defined abilities.
const CustomBase ID = 10000

var idKeys = [...]string{
	"none",
	"stench",
	"drizzle",
	"speed_boost",
	"battle_armor",
	"sturdy",
	"damp",
	"limber",
	"sand_veil",
	"static",
	"volt_absorb",
	"water_absorb",
	"oblivious",
	"cloud_nine",
	"compound_eyes",
	"insomnia",
	"color_change",
	"immunity",
	"flash_fire",
	"shield_dust",
	"own_tempo",
	"suction_cups",
	"intimidate",
	"shadow_tag",
	"rough_skin",
	"wonder_guard",
	"levitate",
	"effect_spore",
	"synchronize",
	"clear_body",
	"natural_cure",
	"lightning_rod",
	"serene_grace",
	"swift_swim",
	"chlorophyll",
	"illuminate",
	"trace",
	"huge_power",
	"poison_point",
	"inner_focus",
	"magma_armor",
	"water_veil",
	"magnet_pull",
	"soundproof",
	"rain_dish",
	"sand_stream",
	"pressure",
	"thick_fat",
	"early_bird",
	"flame_body",
	"run_away",
	"keen_eye",
	"hyper_cutter",
	"pickup",
	"truant",
	"hustle",
	"cute_charm",
	"plus",
	"minus",
	"forecast",
	"sticky_hold",
	"shed_skin",
	"guts",
	"marvel_scale",
	"liquid_ooze",
	"overgrow",
	"blaze",
	"torrent",
	"swarm",
	"rock_head",
	"drought",
	"arena_trap",
	"vital_spirit",
	"white_smoke",
	"pure_power",
	"shell_armor",
	"air_lock",
	"tangled_feet",
	"motor_drive",
	"rivalry",
	"steadfast",
	"snow_cloak",
	"gluttony",
	"anger_point",
	"unburden",
	"heatproof",
	"simple",
	"dry_skin",
	"download",
	"iron_fist",
	"poison_heal",
	"adaptability",
	"skill_link",
	"hydration",
	"solar_power",
	"quick_feet",
	"normalize",
	"sniper",
	"magic_guard",
	"no_guard",
	"stall",
	"technician",
	"leaf_guard",
	"klutz",
	"mold_breaker",
	"super_luck",
	"aftermath",
	"anticipation",
	"forewarn",
	"unaware",
	"tinted_lens",
	"filter",
	"slow_start",
	"scrappy",
	"storm_drain",
	"ice_body",
	"solid_rock",
	"snow_warning",
	"honey_gather",
	"frisk",
	"reckless",
	"multitype",
	"flower_gift",
	"bad_dreams",
	"pickpocket",
	"sheer_force",
	"contrary",
	"unnerve",
	"defiant",
	"defeatist",
	"cursed_body",
	"healer",
	"friend_guard",
	"weak_armor",
	"heavy_metal",
	"light_metal",
	"multiscale",
	"toxic_boost",
	"flare_boost",
	"harvest",
	"telepathy",
	"moody",
	"overcoat",
	"poison_touch",
	"regenerator",
	"big_pecks",
	"sand_rush",
	"wonder_skin",
	"analytic",
	"illusion",
	"imposter",
	"infiltrator",
	"mummy",
	"moxie",
	"justified",
	"rattled",
	"magic_bounce",
	"sap_sipper",
	"prankster",
	"sand_force",
	"iron_barbs",
	"zen_mode",
	"victory_star",
	"turboblaze",
	"teravolt",
	"aroma_veil",
	"flower_veil",
	"cheek_pouch",
	"protean",
	"fur_coat",
	"magician",
	"bulletproof",
	"competitive",
	"strong_jaw",
	"refrigerate",
	"sweet_veil",
	"stance_change",
	"gale_wings",
	"mega_launcher",
	"grass_pelt",
	"symbiosis",
	"tough_claws",
	"pixilate",
	"gooey",
	"aerilate",
	"parental_bond",
	"dark_aura",
	"fairy_aura",
	"aura_break",
	"primordial_sea",
	"desolate_land",
	"delta_stream",
	"stamina",
	"wimp_out",
	"emergency_exit",
	"water_compaction",
	"merciless",
	"shields_down",
	"stakeout",
	"water_bubble",
	"steelworker",
	"berserk",
	"slush_rush",
	"long_reach",
	"liquid_voice",
	"triage",
	"galvanize",
	"surge_surfer",
	"schooling",
	"disguise",
	"battle_bond",
	"power_construct",
	"corrosion",
	"comatose",
	"queenly_majesty",
	"innards_out",
	"dancer",
	"battery",
	"fluffy",
	"dazzling",
	"soul_heart",
	"tangling_hair",
	"receiver",
	"power_of_alchemy",
	"beast_boost",
	"rks_system",
	"electric_surge",
	"psychic_surge",
	"misty_surge",
	"grassy_surge",
	"full_metal_body",
	"shadow_shield",
	"prism_armor",
	"neuroforce",
	"intrepid_sword",
	"dauntless_shield",
	"libero",
	"ball_fetch",
	"cotton_down",
	"propeller_tail",
	"mirror_armor",
	"gulp_missile",
	"stalwart",
	"steam_engine",
	"punk_rock",
	"sand_spit",
	"ice_scales",
	"ripen",
	"ice_face",
	"power_spot",
	"mimicry",
	"screen_cleaner",
	"steely_spirit",
	"perish_body",
	"wandering_spirit",
	"gorilla_tactics",
	"neutralizing_gas",
	"pastel_veil",
	"hunger_switch",
	"quick_draw",
	"unseen_fist",
	"curious_medicine",
	"transistor",
	"dragons_maw",
	"chilling_neigh",
	"grim_neigh",
	"as_one_glastrier",
	"as_one_spectrier",
	"lingering_aroma",
	"seed_sower",
	"thermal_exchange",
	"anger_shell",
	"purifying_salt",
	"well_baked_body",
	"wind_rider",
	"guard_dog",
	"rocky_payload",
	"wind_power",
	"zero_to_hero",
	"commander",
	"electromorphosis",
	"protosynthesis",
	"quark_drive",
	"good_as_gold",
	"vessel_of_ruin",
	"sword_of_ruin",
	"tablets_of_ruin",
	"beads_of_ruin",
	"orichalcum_pulse",
	"hadron_engine",
	"opportunist",
	"cud_chew",
	"sharpness",
	"supreme_overlord",
	"costar",
	"toxic_debris",
	"armor_tail",
	"earth_eater",
	"mycelium_might",
	"minds_eye",
	"supersweet_syrup",
	"hospitality",
	"toxic_chain",
	"embody_aspect_teal",
	"embody_aspect_wellspring",
	"embody_aspect_hearthflame",
	"embody_aspect_cornerstone",
	"tera_shift",
	"tera_shell",
	"teraform_zero",
	"poison_puppeteer",
}

// String returns the snake-case key of the ability, e.g. "water_absorb".
func (id ID) String() string {
	if id >= 0 && int(id) < len(idKeys) {
		return idKeys[id]
	}
	return fmt.Sprintf("ability(%d)", int(id))
}

// IsStandard reports whether id belongs to the standard table.
func (id ID) IsStandard() bool {
	return id > None && int(id) <= standardCount
}

// ParseID resolves a snake-case key of a standard ability.
//
// Postcondition: Returns the matching ID, or None and a non-nil error.
func ParseID(key string) (ID, error) {
	if id, ok := idsByKey[key]; ok {
		return id, nil
	}
	return None, fmt.Errorf("ability: unknown ability %q", key)
}

var idsByKey = func() map[string]ID {
	m := make(map[string]ID, len(idKeys))
	for i, k := range idKeys {
		m[k] = ID(i)
	}
	return m
}()
